package mashvisor

import "encoding/json"

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

// optFloat tolerates number, quoted number, or null; nil means absent.
type optFloat struct {
	Value *float64
}

func (o *optFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		o.Value = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		b = []byte(str)
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		// malformed numeric -> treat as absent, never fail the payload
		o.Value = nil
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		o.Value = nil
		return nil
	}
	o.Value = &f
	return nil
}

// optInt is optFloat truncated to an int.
type optInt struct {
	Value *int
}

func (o *optInt) UnmarshalJSON(b []byte) error {
	var f optFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	if f.Value == nil {
		o.Value = nil
		return nil
	}
	v := int(*f.Value)
	o.Value = &v
	return nil
}

// rawListing covers the field-name drift across Mashvisor listing products:
// beds vs bedrooms, baths vs bathrooms, rent vs price. The mapper prefers the
// explicit rental fields and falls back to the synonyms.
type rawListing struct {
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	Zipcode      stringNumber `json:"zipcode"`
	Price        optFloat     `json:"price"`
	Rent         optFloat     `json:"rent"`
	Beds         optInt       `json:"beds"`
	Bedrooms     optInt       `json:"bedrooms"`
	Baths        optFloat     `json:"baths"`
	Bathrooms    optFloat     `json:"bathrooms"`
	Sqft         optFloat     `json:"sqft"`
	YearBuilt    optInt       `json:"year_built"`
	Type         string       `json:"type"`
	PropertyType string       `json:"property_type"`
	Distance     optFloat     `json:"distance"`
}

type rawNeighborhood struct {
	ID        stringNumber `json:"id"`
	Name      string       `json:"name"`
	Latitude  optFloat     `json:"latitude"`
	Longitude optFloat     `json:"longitude"`
}
