package dish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestListDishes_SendsAPIKeyAndParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dishes", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		require.Equal(t, "test-key", r.Header.Get("apikey"))
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id":"d1","name":"Truffle Mac & Cheese","price":24.99,
			"restaurant_name":"Bistro Downtown","restaurant_address":"123 Main St",
			"distance":0.8,"rating":4.8,
			"video_url":"https://cdn.example.com/d1.mp4",
			"image_url":"https://cdn.example.com/d1.jpg",
			"video_seconds":12,
			"tags":["Cheesy","Comfort Food"],
			"description":"Creamy mac and cheese"
		}]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", ts.Client())
	dishes, err := c.ListDishes(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	require.Equal(t, "d1", dishes[0].ID)
	require.Equal(t, "Truffle Mac & Cheese", dishes[0].Name)
	require.Equal(t, []string{"Cheesy", "Comfort Food"}, dishes[0].Tags)
	require.Equal(t, 12*time.Second, dishes[0].ClipLength())
}

func TestListDishes_ErrorIncludesStatusAndBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "wrong", ts.Client())
	_, err := c.ListDishes(context.Background(), 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 401")
	require.Contains(t, err.Error(), "invalid api key")
}

func TestRecordLike_PostsDishID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/likes", r.URL.Path)

		var row map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		require.Equal(t, "d2", row["dish_id"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", ts.Client())
	require.NoError(t, c.RecordLike(context.Background(), "d2"))
}

func TestDeleteLike_DeletesByDishID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/likes", r.URL.Path)
		require.Equal(t, "eq.d2", r.URL.Query().Get("dish_id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", ts.Client())
	require.NoError(t, c.DeleteLike(context.Background(), "d2"))
}

func TestCreateOrder_ReturnsGeneratedReference(t *testing.T) {
	var posted map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", ts.Client())
	orderID, err := c.CreateOrder(context.Background(), "d3")
	require.NoError(t, err)
	require.Equal(t, posted["id"], orderID)
	require.Equal(t, "d3", posted["dish_id"])

	_, err = uuid.Parse(orderID)
	require.NoError(t, err)
}

func TestRecordBookmark_ServerFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", ts.Client())
	err := c.RecordBookmark(context.Background(), "d4")
	require.Error(t, err)
	require.Contains(t, err.Error(), "record bookmark")
}

func TestClipLength_DefaultsWhenUnset(t *testing.T) {
	d := Dish{ID: "d5"}
	require.Equal(t, 15*time.Second, d.ClipLength())
}
