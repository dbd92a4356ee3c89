package cpf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid", "11144477735", true},
		{"valid second", "52998224725", true},
		{"wrong first check digit", "11144477725", false},
		{"wrong second check digit", "11144477736", false},
		{"too short", "1114447773", false},
		{"too long", "111444777350", false},
		{"formatted is not normalized", "111.444.777-35", false},
		{"letters", "1114447773a", false},
		{"empty", "", false},
		{"non ascii digit", "１1144477735", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}

func TestValid_RepeatedDigitsAreRejected(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), Length)
		assert.False(t, Valid(s), "expected %s to be rejected", s)
	}
}

func TestValid_Deterministic(t *testing.T) {
	for _, s := range []string{"11144477735", "52998224725", "12345678900"} {
		first := Valid(s)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Valid(s))
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "11144477735", Normalize("111.444.777-35"))
	assert.Equal(t, "11144477735", Normalize(" 111 444 777 35 "))
	assert.Equal(t, "1114447773x", Normalize("111.444.777-3x"))
	assert.True(t, Valid(Normalize("529.982.247-25")))
}

func TestFormatAndMask(t *testing.T) {
	assert.Equal(t, "111.444.777-35", Format("11144477735"))
	assert.Equal(t, "123", Format("123"))
	assert.Equal(t, "123.***.**9-00", Mask("12345678900"))
	assert.Equal(t, "abc", Mask("abc"))
}
