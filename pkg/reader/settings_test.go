package reader_test

import (
	"math"
	"testing"

	. "github.com/quickread/quickread/pkg/reader"
	"github.com/quickread/quickread/pkg/tt"
)

func TestSnapWPM(t *testing.T) {
	tt.Test(t, tt.Fn("SnapWPM", SnapWPM), tt.Table{
		tt.Args(300).Rets(300),
		tt.Args(0).Rets(50),
		tt.Args(-100).Rets(50),
		tt.Args(74).Rets(50),
		tt.Args(75).Rets(100),
		tt.Args(324).Rets(300),
		tt.Args(325).Rets(350),
		tt.Args(1000).Rets(1000),
		tt.Args(1024).Rets(1000),
		tt.Args(5000).Rets(1000),
		tt.Args(math.MaxInt).Rets(1000),
		tt.Args(math.MinInt).Rets(50),
	})
}

func TestParseMode(t *testing.T) {
	tt.Test(t, tt.Fn("ParseMode", ParseMode), tt.Table{
		tt.Args("autoplay").Rets(Autoplay, nil),
		tt.Args("hold-space").Rets(HoldSpace, nil),
		tt.Args("hold").Rets(Autoplay, tt.ErrorMatcher("unknown mode")),
	})
}

func TestMode_TextRoundTrip(t *testing.T) {
	for _, m := range []Mode{Autoplay, HoldSpace} {
		b, _ := m.MarshalText()
		var got Mode
		if err := got.UnmarshalText(b); err != nil || got != m {
			t.Errorf("round trip of %v gives %v, %v", m, got, err)
		}
	}
}

func TestSettings_Normalize(t *testing.T) {
	s := Settings{WPM: 1234, SoftRewindWords: -3}.Normalize()
	if s.WPM != 1000 || s.SoftRewindWords != 0 {
		t.Errorf("Normalize() = %+v", s)
	}
}
