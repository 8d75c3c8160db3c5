package handler

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// AddressHandler handles the address commands and resolves addresses for
// the create commands
type AddressHandler struct {
	places   service.PlaceSearcher
	debounce time.Duration
	render   *Renderer
	log      *slog.Logger
}

// AddressHandlerConfig holds dependencies for the address handler
type AddressHandlerConfig struct {
	Places   service.PlaceSearcher
	Debounce time.Duration
	Renderer *Renderer
	Logger   *slog.Logger
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(cfg AddressHandlerConfig) *AddressHandler {
	return &AddressHandler{
		places:   cfg.Places,
		debounce: cfg.Debounce,
		render:   cfg.Renderer,
		log:      cfg.Logger,
	}
}

func (h *AddressHandler) lookup(onSelect func(model.Place)) *service.AddressLookup {
	return service.NewAddressLookup(service.AddressLookupConfig{
		Searcher: h.places,
		Debounce: h.debounce,
		OnSelect: onSelect,
		Logger:   h.log,
	})
}

// Search handles `gather address search TEXT`
func (h *AddressHandler) Search(c *cli.Context) error {
	text := c.Args().First()
	if text == "" {
		return &Failure{Code: ExitInvalidInput, Message: "missing address text"}
	}
	lookup := h.lookup(nil)
	defer lookup.Close()

	lookup.Input(text)
	lookup.Wait()
	if err := lookup.Err(); err != nil {
		return fail(err)
	}
	return h.render.Places(lookup.Suggestions())
}

// Reverse handles `gather address reverse LAT LON`
func (h *AddressHandler) Reverse(c *cli.Context) error {
	lat, lon, err := coordinateArgs(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	lookup := h.lookup(nil)
	defer lookup.Close()

	p, err := lookup.UseLocation(c.Context, lat, lon)
	if err != nil {
		return fail(err)
	}
	return h.render.Places([]model.Place{p})
}

// Resolve picks the place for a create form: --lat/--lon use the location
// directly, --address takes the --pick-th suggestion. No flags, no place.
func (h *AddressHandler) Resolve(c *cli.Context) (model.Place, error) {
	var chosen model.Place
	lookup := h.lookup(func(p model.Place) { chosen = p })
	defer lookup.Close()

	switch {
	case c.IsSet("lat") || c.IsSet("lon"):
		if !c.IsSet("lat") || !c.IsSet("lon") {
			return model.Place{}, &Failure{Code: ExitInvalidInput, Message: "--lat and --lon go together"}
		}
		if _, err := lookup.UseLocation(c.Context, c.Float64("lat"), c.Float64("lon")); err != nil {
			return model.Place{}, fail(err)
		}
	case c.String("address") != "":
		lookup.Input(c.String("address"))
		lookup.Wait()
		if err := lookup.Err(); err != nil {
			return model.Place{}, fail(err)
		}
		pick := c.Int("pick")
		if pick <= 0 {
			pick = 1
		}
		if _, err := lookup.SelectIndex(pick - 1); err != nil {
			return model.Place{}, fail(err)
		}
	}
	return chosen, nil
}

func coordinateArgs(latArg, lonArg string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, MapServiceError(model.NewValidationError([]model.FieldError{{Field: "lat", Message: "latitude must be a number between -90 and 90"}}))
	}
	lon, err := strconv.ParseFloat(lonArg, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, MapServiceError(model.NewValidationError([]model.FieldError{{Field: "lon", Message: "longitude must be a number between -180 and 180"}}))
	}
	return lat, lon, nil
}
