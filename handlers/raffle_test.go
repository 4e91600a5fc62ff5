// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/htmx-demo/middleware"
	"github.com/danielhkuo/htmx-demo/testutil"
)

// fixedRand returns a set coin and offset
type fixedRand struct {
	coin   int
	offset int64
}

func (f fixedRand) IntN(n int) int       { return f.coin % n }
func (f fixedRand) Int64N(n int64) int64 { return f.offset % n }

func newRaffleHandler(t *testing.T, rng Rand) *RaffleHandler {
	t.Helper()
	h := NewRaffleHandler(testutil.GetTestConfig(), newRenderer(t))
	if rng != nil {
		h.rng = rng
	}
	return h
}

func TestRaffleIndex(t *testing.T) {
	h := newRaffleHandler(t, nil)

	req := middleware.WithCSRFToken(testutil.MakeRequest("GET", "/raffle", nil, nil), "tok")
	w := httptest.NewRecorder()
	h.Index(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	doc := parseHTML(t, w.Body.String())

	form := doc.Find("form")
	if form.AttrOr("hx-post", "") != "/raffle/start-picker" {
		t.Errorf("Expected form to post to start-picker, got '%s'", form.AttrOr("hx-post", ""))
	}
	if form.AttrOr("hx-target", "") != ".winner" || form.AttrOr("hx-swap", "") != "innerHTML" {
		t.Error("Expected form to swap into .winner")
	}
	if v := form.Find("input[name=_csrfToken]").AttrOr("value", ""); v != "tok" {
		t.Errorf("Expected CSRF field 'tok', got '%s'", v)
	}
	if doc.Find("link[href='/static/classic.css']").Length() != 1 {
		t.Error("Expected the classic layout")
	}
	if title := doc.Find("title").Text(); title != "HTMX Demo: Raffle" {
		t.Errorf("Unexpected title '%s'", title)
	}
}

func TestStartPicker(t *testing.T) {
	h := newRaffleHandler(t, nil)

	tests := []struct {
		name           string
		form           url.Values
		expectedStatus int
	}{
		{"valid range", url.Values{"min": {"1"}, "max": {"5"}}, http.StatusOK},
		{"single value range", url.Values{"min": {"7"}, "max": {"7"}}, http.StatusOK},
		{"negative range", url.Values{"min": {"-10"}, "max": {"-2"}}, http.StatusOK},
		{"min greater than max", url.Values{"min": {"5"}, "max": {"1"}}, http.StatusBadRequest},
		{"non-integer", url.Values{"min": {"a"}, "max": {"5"}}, http.StatusBadRequest},
		{"fraction", url.Values{"min": {"1.5"}, "max": {"5"}}, http.StatusBadRequest},
		{"missing max", url.Values{"min": {"1"}}, http.StatusBadRequest},
		{"out of range", url.Values{"min": {"1"}, "max": {"99999999999"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/raffle/start-picker", tt.form, testutil.HTMXHeaders())
			w := httptest.NewRecorder()

			h.StartPicker(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK && !strings.Contains(w.Body.String(), `class="error"`) {
				t.Errorf("Expected an error fragment, got '%s'", w.Body.String())
			}
		})
	}
}

func TestStartPicker_Polling(t *testing.T) {
	h := newRaffleHandler(t, nil)

	req := testutil.MakeRequest("POST", "/raffle/start-picker",
		url.Values{"min": {"1"}, "max": {"5"}}, testutil.HTMXHeaders())
	w := httptest.NewRecorder()
	h.StartPicker(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("Expected no layout")
	}

	div := parseHTML(t, body).Find("div.no-winner")
	if div.AttrOr("hx-get", "") != "/raffle/choose-winner" {
		t.Errorf("Expected polling of choose-winner, got '%s'", div.AttrOr("hx-get", ""))
	}
	if vals := div.AttrOr("hx-vals", ""); vals != `{"max":"5","min":"1"}` {
		t.Errorf("Unexpected hx-vals '%s'", vals)
	}
	if trigger := div.AttrOr("hx-trigger", ""); trigger != "every 2000ms" {
		t.Errorf("Unexpected hx-trigger '%s'", trigger)
	}
	if text := div.Text(); text != "Polling every 2 seconds for users between 1 and 5" {
		t.Errorf("Unexpected text '%s'", text)
	}
}

func TestChooseWinner(t *testing.T) {
	t.Run("tails keeps polling", func(t *testing.T) {
		h := newRaffleHandler(t, fixedRand{coin: 0})
		w := httptest.NewRecorder()
		h.ChooseWinner(w, testutil.MakeRequest("GET", "/raffle/choose-winner?min=1&max=5", nil, testutil.HTMXHeaders()))

		testutil.AssertStatus(t, w, http.StatusOK)
		doc := parseHTML(t, w.Body.String())
		if doc.Find(".picking").Length() != 1 || doc.Find(".winner-number").Length() != 0 {
			t.Errorf("Expected no winner, got '%s'", w.Body.String())
		}
	})

	t.Run("heads stops polling with a winner", func(t *testing.T) {
		h := newRaffleHandler(t, fixedRand{coin: 1, offset: 3})
		w := httptest.NewRecorder()
		h.ChooseWinner(w, testutil.MakeRequest("GET", "/raffle/choose-winner?min=10&max=20", nil, testutil.HTMXHeaders()))

		testutil.AssertStatus(t, w, middleware.StatusStopPolling)
		winner := parseHTML(t, w.Body.String()).Find(".winner-number")
		if winner.AttrOr("data-winner", "") != "13" {
			t.Errorf("Expected winner 13, got '%s'", winner.AttrOr("data-winner", ""))
		}
		if winner.Text() != "The winner is 13!" {
			t.Errorf("Unexpected text '%s'", winner.Text())
		}
	})

	t.Run("invalid range", func(t *testing.T) {
		h := newRaffleHandler(t, fixedRand{coin: 1})
		for _, q := range []string{"min=5&max=1", "min=x&max=1", ""} {
			w := httptest.NewRecorder()
			h.ChooseWinner(w, testutil.MakeRequest("GET", "/raffle/choose-winner?"+q, nil, testutil.HTMXHeaders()))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		}
	})
}

func TestChooseWinner_StaysInRange(t *testing.T) {
	h := newRaffleHandler(t, rand.New(rand.NewPCG(1, 2)))

	const lo, hi = -3, 4
	seen := map[int64]bool{}
	var polls, winners int
	for range 500 {
		w := httptest.NewRecorder()
		h.ChooseWinner(w, testutil.MakeRequest("GET", "/raffle/choose-winner?min=-3&max=4", nil, testutil.HTMXHeaders()))
		polls++

		if w.Code == http.StatusOK {
			continue
		}
		testutil.AssertStatus(t, w, middleware.StatusStopPolling)
		winners++

		v, err := strconv.ParseInt(parseHTML(t, w.Body.String()).Find(".winner-number").AttrOr("data-winner", ""), 10, 64)
		if err != nil {
			t.Fatalf("Failed to read winner: %v", err)
		}
		if v < lo || v > hi {
			t.Fatalf("Winner %d outside [%d, %d]", v, lo, hi)
		}
		seen[v] = true
	}

	// Both outcomes occur and every value is reachable
	if winners == 0 || winners == polls {
		t.Errorf("Expected a mix of outcomes, got %d winners in %d polls", winners, polls)
	}
	if len(seen) != hi-lo+1 {
		t.Errorf("Expected all %d values drawn, got %d", hi-lo+1, len(seen))
	}
}

func TestIntervalText(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2 * time.Second, "2 seconds"},
		{time.Second, "1 second"},
		{1500 * time.Millisecond, "1.5s"},
		{500 * time.Millisecond, "500ms"},
	}

	for _, tt := range tests {
		if got := intervalText(tt.d); got != tt.want {
			t.Errorf("intervalText(%v) = '%s', want '%s'", tt.d, got, tt.want)
		}
	}
}
