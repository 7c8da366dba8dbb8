package zillow

import "encoding/json"

// Listing is one for-sale result in the shape the DSCR screen consumes.
type Listing struct {
	Zpid          string   `json:"zpid"`
	Address       string   `json:"address"`
	Price         float64  `json:"price"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *float64 `json:"bathrooms,omitempty"`
	RentZestimate float64  `json:"rentZestimate,omitempty"`
	HoaFee        float64  `json:"hoaFee,omitempty"`
	TaxRate       float64  `json:"propertyTaxRate,omitempty"`
}

// stringNumber accepts string or number JSON and stores as string
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}

// MapSearchPayload maps a propertyExtendedSearch payload. Rows missing the
// fields the screen cannot work without (address, price, zpid) are dropped.
func MapSearchPayload(raw []byte) ([]Listing, error) {
	type zProp struct {
		Zpid          stringNumber `json:"zpid"`
		Address       string       `json:"address"`
		Price         float64      `json:"price"`
		Bedrooms      *int         `json:"bedrooms"`
		Bathrooms     *float64     `json:"bathrooms"`
		RentZestimate float64      `json:"rentZestimate"`
		HoaFee        float64      `json:"hoaFee"`
		TaxRate       float64      `json:"propertyTaxRate"`
		PriceComp     struct {
			Hoa float64 `json:"hoa"`
		} `json:"priceComponent"`
	}
	var root struct {
		Props []zProp `json:"props"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	out := make([]Listing, 0, len(root.Props))
	for _, p := range root.Props {
		if p.Address == "" || p.Price <= 0 || p.Zpid == "" {
			continue
		}
		hoa := p.HoaFee
		if hoa == 0 {
			hoa = p.PriceComp.Hoa
		}
		out = append(out, Listing{
			Zpid:          string(p.Zpid),
			Address:       p.Address,
			Price:         p.Price,
			Bedrooms:      p.Bedrooms,
			Bathrooms:     p.Bathrooms,
			RentZestimate: p.RentZestimate,
			HoaFee:        hoa,
			TaxRate:       p.TaxRate,
		})
	}
	return out, nil
}
