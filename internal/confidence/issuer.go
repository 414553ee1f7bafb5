package confidence

import "context"

// neutralScore stands in when a collaborator gave us no signal at all.
const neutralScore = 0.5

// IssuerProvider passes through the issuer-identification confidence.
type IssuerProvider struct{}

func (IssuerProvider) Name() string     { return FactorIssuer }
func (IssuerProvider) Default() float64 { return neutralScore }

func (IssuerProvider) Compute(_ context.Context, in *Input) (float64, error) {
	if in.Context.Issuer == nil {
		return neutralScore, nil
	}
	return clamp01(in.Context.Issuer.Confidence), nil
}
