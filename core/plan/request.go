package plan

import "github.com/tanklogix/loadplan/core/model"

// Request is the wire form of a planning request as accepted by the HTTP and
// MQTT surfaces. Compartments and products are resolved from the catalogs by
// the service; TempF left nil means "use the ambient temperature".
type Request struct {
	ID          string                   `json:"id,omitempty"`
	TrailerID   string                   `json:"trailer_id"`
	Assignments map[int]model.Assignment `json:"assignments"`
	TempF       *float64                 `json:"temp_f,omitempty"`
	BiasSlider  float64                  `json:"bias_slider"`
	Headspace   map[int]float64          `json:"headspace,omitempty"`
}
