package booking

const (
	Currency           = "SAR"
	PerExtraPilgrimFee = 50
	DefaultBasePrice   = 200
)

// ComputeTotal prices a reservation: the base price covers the first pilgrim,
// every extra pilgrim adds PerExtraPilgrimFee and the meeting point adds its
// supplement. Negative counts and supplements count as zero.
func ComputeTotal(basePrice, pilgrimCount, supplement int) int {
	extra := max(0, pilgrimCount-1)
	return basePrice + extra*PerExtraPilgrimFee + max(0, supplement)
}

// ResolveBasePrice picks the service override, then the guide's own rate,
// then DefaultBasePrice. Non-positive values count as unset.
func ResolveBasePrice(servicePrice *int, guideBase int) int {
	if servicePrice != nil && *servicePrice > 0 {
		return *servicePrice
	}
	if guideBase > 0 {
		return guideBase
	}
	return DefaultBasePrice
}

// Quote is a price breakdown of a draft
type Quote struct {
	BasePrice    int    `json:"base_price"`
	PilgrimCount int    `json:"pilgrim_count"`
	Surcharge    int    `json:"surcharge"`
	Supplement   int    `json:"supplement"`
	Total        int    `json:"total"`
	Currency     string `json:"currency"`
}

// NewQuote breaks ComputeTotal down into its parts
func NewQuote(basePrice, pilgrimCount, supplement int) Quote {
	total := ComputeTotal(basePrice, pilgrimCount, supplement)
	return Quote{
		BasePrice:    basePrice,
		PilgrimCount: pilgrimCount,
		Surcharge:    max(0, pilgrimCount-1) * PerExtraPilgrimFee,
		Supplement:   max(0, supplement),
		Total:        total,
		Currency:     Currency,
	}
}
