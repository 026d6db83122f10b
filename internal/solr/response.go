package solr

import (
	"encoding/json"
	"fmt"
)

// FacetCount is a facet value along with the number of matching documents
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Response holds the documents and facet counts returned by the index
type Response struct {
	NumFound int
	Start    int
	Docs     []Document
	Facets   map[string][]FacetCount
}

type rawResponse struct {
	Response struct {
		NumFound int        `json:"numFound"`
		Start    int        `json:"start"`
		Docs     []Document `json:"docs"`
	} `json:"response"`
	FacetCounts struct {
		FacetFields map[string][]any `json:"facet_fields"`
	} `json:"facet_counts"`
	Error struct {
		Msg  string `json:"msg"`
		Code int    `json:"code"`
	} `json:"error"`
}

func parseResponse(body []byte) (Response, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return Response{}, fmt.Errorf("%w: decoding response: %s", ErrIndexUnreachable, err)
	}

	res := Response{
		NumFound: raw.Response.NumFound,
		Start:    raw.Response.Start,
		Docs:     raw.Response.Docs,
		Facets:   make(map[string][]FacetCount, len(raw.FacetCounts.FacetFields)),
	}

	// facet fields come as a flat list alternating value and count
	for field, values := range raw.FacetCounts.FacetFields {
		counts := make([]FacetCount, 0, len(values)/2)
		for i := 0; i+1 < len(values); i += 2 {
			value, ok := values[i].(string)
			if !ok {
				continue
			}
			count, _ := values[i+1].(float64)
			counts = append(counts, FacetCount{Value: value, Count: int(count)})
		}
		res.Facets[field] = counts
	}

	return res, nil
}

func parseErrorMessage(body []byte) string {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return string(body)
	}
	return raw.Error.Msg
}
