package dashboard

import (
	"net/url"
	"strconv"

	"WorkshopMapDashboard/internal/filter"
)

// HeatmapPrefix namespaces heatmap filter parameters in a query string.
const HeatmapPrefix = "heat."

// RequestFromQuery reads a Request from query parameters: map filters use
// plain names, heatmap filters the "heat." prefix, bar charts are chosen
// with repeated "count" and the heatmap radius with "radius".
func RequestFromQuery(q url.Values) (Request, error) {
	var req Request
	var err error
	if req.Map, err = filter.FromQuery(q, ""); err != nil {
		return req, err
	}
	if req.Heatmap, err = filter.FromQuery(q, HeatmapPrefix); err != nil {
		return req, err
	}
	for _, f := range q["count"] {
		if f != "" {
			req.CountFields = append(req.CountFields, f)
		}
	}
	if r, err := strconv.Atoi(q.Get("radius")); err == nil && r > 0 {
		req.Radius = r
	}
	return req, nil
}

// Query encodes req so that RequestFromQuery reproduces it.
func (req Request) Query() url.Values {
	q := url.Values{}
	filter.ToQuery(req.Map, "", q)
	filter.ToQuery(req.Heatmap, HeatmapPrefix, q)
	for _, f := range req.CountFields {
		q.Add("count", f)
	}
	if req.Radius > 0 {
		q.Set("radius", strconv.Itoa(req.Radius))
	}
	return q
}
