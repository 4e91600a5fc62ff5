// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/htmx-demo/cliparse"
	"github.com/danielhkuo/htmx-demo/middleware"
	"github.com/danielhkuo/htmx-demo/models"
	"github.com/danielhkuo/htmx-demo/views"
)

var (
	errNotInteger = errors.New("minimum and maximum must be whole numbers")
	errBadRange   = errors.New("minimum must not be greater than maximum")
)

// Rand is the randomness the raffle draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
}

// globalRand uses the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int       { return rand.IntN(n) }
func (globalRand) Int64N(n int64) int64 { return rand.Int64N(n) }

type RaffleHandler struct {
	cfg  cliparse.Config
	view *views.Renderer
	rng  Rand
}

func NewRaffleHandler(cfg cliparse.Config, view *views.Renderer) *RaffleHandler {
	return &RaffleHandler{cfg: cfg, view: view, rng: globalRand{}}
}

type pickerView struct {
	models.RaffleRange
	Vals           map[string]string
	IntervalMillis int64
	IntervalText   string
}

type winnerView struct {
	models.RaffleRange
	HasWinner bool
	Winner    int64
}

// parseRange reads min and max as 32-bit integers so max-min+1 cannot
// overflow.
func parseRange(minStr, maxStr string) (models.RaffleRange, error) {
	lo, err := strconv.ParseInt(strings.TrimSpace(minStr), 10, 32)
	if err != nil {
		return models.RaffleRange{}, errNotInteger
	}
	hi, err := strconv.ParseInt(strings.TrimSpace(maxStr), 10, 32)
	if err != nil {
		return models.RaffleRange{}, errNotInteger
	}
	if lo > hi {
		return models.RaffleRange{}, errBadRange
	}
	return models.RaffleRange{Min: lo, Max: hi}, nil
}

// intervalText renders whole seconds the way people say them ("2 seconds").
func intervalText(d time.Duration) string {
	if d >= time.Second && d%time.Second == 0 {
		return english.Plural(int(d/time.Second), "second", "")
	}
	return d.String()
}

// Index handles GET /raffle
func (h *RaffleHandler) Index(w http.ResponseWriter, r *http.Request) {
	checkRender(w, h.view.Page(w, http.StatusOK, views.LayoutClassic, "raffle/index", newPage(r, "Raffle")))
}

// StartPicker handles POST /raffle/start-picker
// Renders a div that polls ChooseWinner until a winner is drawn
func (h *RaffleHandler) StartPicker(w http.ResponseWriter, r *http.Request) {
	bounds, err := parseRange(r.PostFormValue("min"), r.PostFormValue("max"))
	if err != nil {
		middleware.HTMLError(w, http.StatusBadRequest, err.Error())
		return
	}

	data := pickerView{
		RaffleRange: bounds,
		Vals: map[string]string{
			"min": strconv.FormatInt(bounds.Min, 10),
			"max": strconv.FormatInt(bounds.Max, 10),
		},
		IntervalMillis: h.cfg.PollInterval.Milliseconds(),
		IntervalText:   intervalText(h.cfg.PollInterval),
	}
	checkRender(w, h.view.Page(w, http.StatusOK, "", "raffle/start_picker", data))
}

// ChooseWinner handles GET /raffle/choose-winner?min=&max=
// Each poll has an even chance of drawing a winner; a draw answers 286 so
// htmx stops polling
func (h *RaffleHandler) ChooseWinner(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bounds, err := parseRange(q.Get("min"), q.Get("max"))
	if err != nil {
		middleware.HTMLError(w, http.StatusBadRequest, err.Error())
		return
	}

	data := winnerView{RaffleRange: bounds}
	status := http.StatusOK
	if h.rng.IntN(2) == 1 {
		data.HasWinner = true
		data.Winner = bounds.Min + h.rng.Int64N(bounds.Max-bounds.Min+1)
		status = middleware.StatusStopPolling
	}

	checkRender(w, h.view.Page(w, status, "", "raffle/choose_winner", data))
}
