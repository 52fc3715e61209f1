package model

// DensityObservation is an operator-observed hydrometer reading taken at a
// known temperature. When present it supersedes the catalog reference density.
type DensityObservation struct {
	API   float64 `json:"api"`
	TempF float64 `json:"temp_f"`
}

// Product describes a fuel from a terminal's product catalog. API60 is the
// reference density expressed as API gravity at 60F, AlphaPerF the thermal
// expansion coefficient per degree Fahrenheit.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	API60     float64 `json:"api60"`
	AlphaPerF float64 `json:"alpha_per_f"`
	// UNNumber identifies the regulated substance for placarding, e.g. "UN1203".
	UNNumber string `json:"un_number,omitempty"`

	Observation *DensityObservation `json:"observation,omitempty"`
}

// Assignment maps a compartment to either "empty" or a chosen product.
type Assignment struct {
	Empty     bool   `json:"empty"`
	ProductID string `json:"product_id"`
}
