package outfit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSuccess(t *testing.T) {
	var gotReq Request
	var gotPath, gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"outfit_description": "a look",
			"image_url": "https://img.example/outfit.png",
			"styling_tips": "Roll the sleeves.",
			"alternative_palette": "Navy, Camel",
			"measurements": {
				"chest_circumference": 98.5,
				"waist_circumference": 82,
				"hip_circumference": 96,
				"arm_length": 64,
				"leg_length": 104,
				"shoulder_hip_ratio": 1.1,
				"bmi": 23.4
			},
			"selected_items": {
				"top": {"id": "t1", "brand": "zara", "category": "shirt", "colors": ["navy", "white"], "price_eur": "39.95", "url": "zara.com/t1", "style": "casual"},
				"pants": {"id": "p1", "brand": "hm", "category": "chinos", "colors": ["camel"], "price_eur": "29.99", "url": "hm.com/p1", "style": "casual"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Generate(context.Background(), Request{
		UserMessage: "male, 178, 75, 26, 43, zara hm, style: casual",
		BodyType:    "athletic",
		UserName:    "Alex",
	})
	require.NoError(t, err)

	assert.Equal(t, "/generate-outfit", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "athletic", gotReq.BodyType)
	assert.Equal(t, "Alex", gotReq.UserName)

	assert.Equal(t, "https://img.example/outfit.png", resp.ImageURL)
	assert.Equal(t, "Roll the sleeves.", resp.StylingTips)
	require.NotNil(t, resp.Measurements)
	assert.InDelta(t, 23.4, resp.Measurements.BMI, 0.001)

	items := resp.SelectedItems.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Top", items[0].Label)
	assert.Equal(t, "zara", items[0].Item.Brand)
	assert.InDelta(t, 69.94, resp.SelectedItems.TotalEUR(), 0.001)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), Request{})
	require.Error(t, err)

	re := Classify(err)
	assert.Equal(t, KindServerError, re.Kind)
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Equal(t, "boom", re.Detail)
}

func TestGenerateNetworkUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens here anymore

	_, err := NewClient(url).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, KindNetworkUnreachable, Classify(err).Kind)
}

func TestGenerateMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, KindUnknown, Classify(err).Kind)
}

func TestSelectionItemsSkipsEmptySlots(t *testing.T) {
	sel := &Selection{
		Top:   &Item{ID: "t1", Brand: "zara"},
		Layer: &Item{}, // no id, skipped
	}
	items := sel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Top", items[0].Label)

	var nilSel *Selection
	assert.Nil(t, nilSel.Items())
}
