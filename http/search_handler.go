package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/comps-api/internal/events"
	"github.com/yourorg/comps-api/internal/finance"
	"github.com/yourorg/comps-api/serpapi"
	"github.com/yourorg/comps-api/zillow"
)

type SearchDeps struct {
	Listings *zillow.Client
	Rent     *serpapi.Client // optional; no market-average fallback without it
	Pub      events.Publisher
}

type SearchRequest struct {
	City         string  `json:"city"`
	State        string  `json:"state"`
	DownPayment  float64 `json:"down_payment"`  // percent, e.g. 20
	InterestRate float64 `json:"interest_rate"` // percent, e.g. 7.0
	MinPrice     int     `json:"min_price"`
	MaxPrice     int     `json:"max_price"`
	Username     string  `json:"username,omitempty"`
}

// PropertyResult is one screened listing, ranked by DSCR.
type PropertyResult struct {
	Address        string   `json:"address"`
	Price          float64  `json:"price"`
	MonthlyPayment float64  `json:"monthly_payment"`
	Rent           int      `json:"rent"`
	RentType       string   `json:"rent_type"`
	DSCR           float64  `json:"dscr"`
	HoaFee         float64  `json:"hoa_fee"`
	TaxRate        float64  `json:"tax_rate"`
	Zpid           string   `json:"zpid"`
	ZillowURL      string   `json:"zillow_url"`
	InsuranceCost  float64  `json:"insurance_cost"`
	Bedrooms       *int     `json:"bedrooms,omitempty"`
	Bathrooms      *float64 `json:"bathrooms,omitempty"`
}

func RegisterSearch(r chi.Router, d SearchDeps) {
	// POST: JSON body
	r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
		var body SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleSearchRequest(w, req, d, body)
	})

	// GET: query params (compatibility)
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		var body SearchRequest
		body.City = q.Get("city")
		body.State = q.Get("state")
		body.Username = q.Get("username")
		if v := q.Get("down_payment"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.DownPayment = f
			}
		}
		if v := q.Get("interest_rate"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.InterestRate = f
			}
		}
		if v := q.Get("min_price"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.MinPrice = i
			}
		}
		if v := q.Get("max_price"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.MaxPrice = i
			}
		}
		handleSearchRequest(w, req, d, body)
	})
}

func handleSearchRequest(w http.ResponseWriter, req *http.Request, d SearchDeps, body SearchRequest) {
	if strings.TrimSpace(body.City) == "" || strings.TrimSpace(body.State) == "" {
		render.Status(req, http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "location_required", "detail": "city and state are required"})
		return
	}

	start := time.Now()
	raw, err := d.Listings.SearchForSale(req.Context(), body.City, body.State, 50)
	if err != nil {
		render.Status(req, http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "upstream_error", "detail": err.Error()})
		return
	}
	listings, err := zillow.MapSearchPayload(raw)
	if err != nil {
		render.Status(req, http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "map_error", "detail": err.Error()})
		return
	}

	results := screenListings(req, d, body, listings)
	sort.SliceStable(results, func(i, j int) bool { return results[i].DSCR > results[j].DSCR })

	if d.Pub != nil {
		d.Pub.PublishSearchCompleted(req.Context(), events.SearchCompleted{
			Kind:    "dscr",
			City:    body.City,
			State:   body.State,
			Results: len(results),
			Took:    time.Since(start),
		})
	}
	log.Printf("[INFO] screened %d of %d listings for %s, %s", len(results), len(listings), body.City, body.State)
	render.JSON(w, req, map[string]any{"ok": true, "count": len(results), "properties": results})
}

func screenListings(req *http.Request, d SearchDeps, body SearchRequest, listings []zillow.Listing) []PropertyResult {
	// rent fallbacks memoized per zip+bedrooms for the life of this request
	fallbackRent := map[string]int{}
	results := make([]PropertyResult, 0, len(listings))

	for _, l := range listings {
		zipcode := zipFromAddress(l.Address)
		if l.Bedrooms == nil || zipcode == "" {
			continue
		}
		if l.Price < float64(body.MinPrice) {
			continue
		}
		if body.MaxPrice > 0 && l.Price > float64(body.MaxPrice) {
			continue
		}

		// Zillow reports the tax rate as a percent, finance wants a fraction
		taxRate := l.TaxRate / 100
		if taxRate <= 0 {
			taxRate = finance.DefaultTaxRate
		}

		payment := finance.MonthlyPayment(finance.PaymentInput{
			Price:          l.Price,
			DownPaymentPct: body.DownPayment / 100,
			InterestRate:   body.InterestRate,
			TaxRate:        taxRate,
			HOAFee:         l.HoaFee,
		})

		rent := int(l.RentZestimate)
		rentType := "Zestimate"
		if rent == 0 {
			memoKey := fmt.Sprintf("%s-%d", zipcode, *l.Bedrooms)
			if cached, ok := fallbackRent[memoKey]; ok {
				rent = cached
				rentType = "Market Average"
			} else if d.Rent != nil {
				avg, err := d.Rent.AverageRent(req.Context(), zipcode, *l.Bedrooms)
				if err == nil && avg > 0 {
					rent = avg
					rentType = "Market Average"
					fallbackRent[memoKey] = avg
				} else if err != nil {
					log.Printf("[WARN] rent lookup failed for %s: %v", memoKey, err)
				}
			}
		}
		if rent == 0 {
			continue
		}

		results = append(results, PropertyResult{
			Address:        l.Address,
			Price:          l.Price,
			MonthlyPayment: payment,
			Rent:           rent,
			RentType:       rentType,
			DSCR:           finance.DSCR(float64(rent), payment),
			HoaFee:         l.HoaFee,
			TaxRate:        taxRate,
			Zpid:           l.Zpid,
			ZillowURL:      fmt.Sprintf("https://www.zillow.com/homedetails/%s_zpid/", l.Zpid),
			InsuranceCost:  finance.MonthlyInsurance(l.Price),
			Bedrooms:       l.Bedrooms,
			Bathrooms:      l.Bathrooms,
		})
	}
	return results
}

// zipFromAddress pulls the trailing zip token off a one-line address.
func zipFromAddress(addr string) string {
	fields := strings.Fields(addr)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
