// Package outfit implements the wire contract with the outfit-generation
// service: the request/response types for POST /generate-outfit, the HTTP
// client, and the classification of request failures into user-facing
// messages.
package outfit

import "strconv"

// Request is the JSON body of POST /generate-outfit.
type Request struct {
	UserMessage string `json:"user_message"`
	BodyType    string `json:"body_type"`
	UserName    string `json:"user_name"`
}

// Measurements holds the body measurements computed by the service.
// All lengths are centimeters; ShoulderHipRatio and BMI are dimensionless.
type Measurements struct {
	ChestCircumference float64 `json:"chest_circumference"`
	WaistCircumference float64 `json:"waist_circumference"`
	HipCircumference   float64 `json:"hip_circumference"`
	ArmLength          float64 `json:"arm_length"`
	LegLength          float64 `json:"leg_length"`
	ShoulderHipRatio   float64 `json:"shoulder_hip_ratio"`
	BMI                float64 `json:"bmi"`
}

// Item is one shoppable garment in the selection.
type Item struct {
	ID       string   `json:"id"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Colors   []string `json:"colors"`
	PriceEUR string   `json:"price_eur"`
	URL      string   `json:"url"`
	Style    string   `json:"style"`
}

// Selection groups the selected garments by slot. Every slot is optional.
type Selection struct {
	Top   *Item `json:"top,omitempty"`
	Pants *Item `json:"pants,omitempty"`
	Layer *Item `json:"layer,omitempty"`
}

// SlotItem pairs a garment with its display slot label.
type SlotItem struct {
	Label string
	Item  *Item
}

// Items returns the populated slots in display order (Top, Pants, Layer).
// Slots without an item id are skipped.
func (s *Selection) Items() []SlotItem {
	if s == nil {
		return nil
	}
	var out []SlotItem
	for _, si := range []SlotItem{
		{Label: "Top", Item: s.Top},
		{Label: "Pants", Item: s.Pants},
		{Label: "Layer", Item: s.Layer},
	} {
		if si.Item != nil && si.Item.ID != "" {
			out = append(out, si)
		}
	}
	return out
}

// TotalEUR sums the parseable item prices. Returns 0 when nothing parses.
func (s *Selection) TotalEUR() float64 {
	var total float64
	for _, si := range s.Items() {
		if p, err := strconv.ParseFloat(si.Item.PriceEUR, 64); err == nil {
			total += p
		}
	}
	return total
}

// Response is the success payload of POST /generate-outfit.
// OutfitDescription is decoded but never surfaced: the client runs the
// suppressed-description variant where assistant messages carry only the
// structured fields.
type Response struct {
	OutfitDescription  string        `json:"outfit_description"`
	ImageURL           string        `json:"image_url"`
	StylingTips        string        `json:"styling_tips"`
	AlternativePalette string        `json:"alternative_palette"`
	Measurements       *Measurements `json:"measurements"`
	SelectedItems      *Selection    `json:"selected_items"`
}
