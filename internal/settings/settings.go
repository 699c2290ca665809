package settings

// Settings are the store-level knobs read by checkout and receipts.
type Settings struct {
	StoreName  string  `json:"storeName"`
	TaxPercent float64 `json:"taxPercent"`
	Currency   string  `json:"currency"`
}

// TaxConfig is the slice of settings checkout cares about.
type TaxConfig struct {
	RatePercent float64 `json:"ratePercent"`
}

// Defaults matches the seeded store configuration: 11% PPN, rupiah.
func Defaults() Settings {
	return Settings{
		StoreName:  "F. POS",
		TaxPercent: 11,
		Currency:   "IDR",
	}
}

func (s Settings) TaxConfig() TaxConfig {
	return TaxConfig{RatePercent: s.TaxPercent}
}
