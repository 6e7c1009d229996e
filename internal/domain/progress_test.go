package domain

import "testing"

func TestProgressRecord_Accuracy(t *testing.T) {
	cases := []struct {
		name      string
		correct   int
		incorrect int
		want      float64
	}{
		{"three correct one wrong", 3, 1, 0.6},
		{"single correct attempt is damped", 1, 0, 0.5},
		{"single wrong attempt is damped", 0, 1, 0.0},
		{"no attempts", 0, 0, 0.0},
		{"many attempts approach true rate", 99, 0, 0.99},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ProgressRecord{CorrectCount: tc.correct, IncorrectCount: tc.incorrect}
			if got := p.Accuracy(); got != tc.want {
				t.Errorf("Accuracy() = %v, want %v", got, tc.want)
			}
		})
	}
}
