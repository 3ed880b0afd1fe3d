package models

import "testing"

func strP(s string) *string { return &s }

func TestInterventionImpact(t *testing.T) {
	tests := []struct {
		name     string
		pre      *string
		post     *string
		want     *float64
		wantPct  *float64
	}{
		{"both recorded", strP("12"), strP("18"), fp(6.0), fp(50.0)},
		{"decline", strP("20"), strP("15"), fp(-5.0), fp(-25.0)},
		{"pre below one clamps base", strP("0.5"), strP("2"), fp(1.5), fp(150.0)},
		{"missing post", strP("12"), nil, nil, nil},
		{"unparseable pre", strP("absent"), strP("18"), nil, nil},
		{"empty strings", strP(""), strP(""), nil, nil},
	}
	for _, tt := range tests {
		it := &Intervention{PreResult: tt.pre, PostResult: tt.post}

		got := it.Impact()
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("%s: Impact() = %v, want %v", tt.name, got, tt.want)
		}
		gotPct := it.ImpactPct()
		if (gotPct == nil) != (tt.wantPct == nil) || (gotPct != nil && *gotPct != *tt.wantPct) {
			t.Errorf("%s: ImpactPct() = %v, want %v", tt.name, gotPct, tt.wantPct)
		}
	}
}

func fp(v float64) *float64 { return &v }
