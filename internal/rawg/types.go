// internal/rawg/types.go
package rawg

import (
	"encoding/json"
	"time"
)

// The RAWG API nests most scalar values inside wrapper objects
// (genres: [{name}], platforms: [{platform:{name}}], esrb_rating: {name}).
// Each DTO flattens its payload in UnmarshalJSON so the rest of the code
// only ever sees plain strings and times.

const (
	releasedLayout = "2006-01-02"
	updatedLayout  = "2006-01-02T15:04:05"
)

// GameRecord is one entry of the paginated games listing.
type GameRecord struct {
	Slug            string
	Name            string
	Released        *time.Time // nil when the catalog has no release date
	BackgroundImage string
	Updated         time.Time
	Genres          []string
	Platforms       []string
	Tags            []string
	ESRBRating      string
}

func (g *GameRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Slug            string `json:"slug"`
		Name            string `json:"name"`
		Released        string `json:"released"`
		BackgroundImage string `json:"background_image"`
		Updated         string `json:"updated"`
		Genres          []struct {
			Name string `json:"name"`
		} `json:"genres"`
		Platforms []struct {
			Platform struct {
				Name string `json:"name"`
			} `json:"platform"`
		} `json:"platforms"`
		Tags []struct {
			Slug string `json:"slug"`
		} `json:"tags"`
		ESRBRating *struct {
			Name string `json:"name"`
		} `json:"esrb_rating"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Slug = raw.Slug
	g.Name = raw.Name
	g.BackgroundImage = raw.BackgroundImage

	g.Released = nil
	if raw.Released != "" {
		t, err := time.Parse(releasedLayout, raw.Released)
		if err != nil {
			return err
		}
		g.Released = &t
	}
	if raw.Updated != "" {
		t, err := time.Parse(updatedLayout, raw.Updated)
		if err != nil {
			return err
		}
		g.Updated = t
	}

	g.Genres = g.Genres[:0]
	for _, genre := range raw.Genres {
		g.Genres = append(g.Genres, genre.Name)
	}
	g.Platforms = g.Platforms[:0]
	for _, p := range raw.Platforms {
		g.Platforms = append(g.Platforms, p.Platform.Name)
	}
	g.Tags = g.Tags[:0]
	for _, tag := range raw.Tags {
		g.Tags = append(g.Tags, tag.Slug)
	}

	g.ESRBRating = ""
	if raw.ESRBRating != nil {
		g.ESRBRating = raw.ESRBRating.Name
	}
	return nil
}

// GamePage is one page of the games listing; a nil Next means the last page.
type GamePage struct {
	Count   int          `json:"count"`
	Next    *string      `json:"next"`
	Results []GameRecord `json:"results"`
}

// GameDetail carries the per-slug enrichment fields. RAWG returns developer
// and publisher as lists of objects; only the first entry is kept.
type GameDetail struct {
	Description string
	Developer   string
	Publisher   string
}

func (d *GameDetail) UnmarshalJSON(data []byte) error {
	var raw struct {
		DescriptionRaw string `json:"description_raw"`
		Developers     []struct {
			Name string `json:"name"`
		} `json:"developers"`
		Publishers []struct {
			Name string `json:"name"`
		} `json:"publishers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Description = raw.DescriptionRaw
	d.Developer = ""
	if len(raw.Developers) > 0 {
		d.Developer = raw.Developers[0].Name
	}
	d.Publisher = ""
	if len(raw.Publishers) > 0 {
		d.Publisher = raw.Publishers[0].Name
	}
	return nil
}

// Store is one entry of the store directory.
type Store struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StoreLink is one store page for a game.
type StoreLink struct {
	StoreID int    `json:"store_id"`
	URL     string `json:"url"`
}

type storesResponse struct {
	Results []Store `json:"results"`
}

type gameStoresResponse struct {
	Results []StoreLink `json:"results"`
}
