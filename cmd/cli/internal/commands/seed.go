package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/pkg/utils"
)

// Fixture is the YAML document accepted by "seed".
type Fixture struct {
	Keywords []string         `yaml:"keywords"`
	Porters  []PorterFixture  `yaml:"porters"`
	Guides   []GuideFixture   `yaml:"guides"`
	Packages []PackageFixture `yaml:"packages"`
	Articles []ArticleFixture `yaml:"articles"`
}

type PorterFixture struct {
	Ratio   string `yaml:"ratio"`
	Count   int    `yaml:"count"`
	Rate    string `yaml:"rate"`
	Remarks string `yaml:"remarks"`
}

type GuideFixture struct {
	Language string `yaml:"language"`
	Rate     string `yaml:"rate"`
	Remarks  string `yaml:"remarks"`
}

type PackageFixture struct {
	Kind           string           `yaml:"kind"`
	Title          string           `yaml:"title"`
	Slug           string           `yaml:"slug"`
	Status         int              `yaml:"status"`
	Description    string           `yaml:"description"`
	Content        string           `yaml:"content"`
	Include        string           `yaml:"include"`
	Exclude        string           `yaml:"exclude"`
	FeaturedImage  string           `yaml:"featured_image"`
	Featured       bool             `yaml:"featured"`
	LoginRequired  bool             `yaml:"login_required"`
	PorterRequired bool             `yaml:"porter_required"`
	GuideRequired  bool             `yaml:"guide_required"`
	Keywords       []string         `yaml:"keywords"`
	Itinerary      []ItemFixture    `yaml:"itinerary"`
	Prices         []PriceFixture   `yaml:"prices"`
	Children       []PackageFixture `yaml:"children"`
	OtherInfo      []map[string]any `yaml:"other_info"`
}

type ItemFixture struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	From         string `yaml:"from"`
	To           string `yaml:"to"`
	Days         string `yaml:"days"`
	StartingTime string `yaml:"starting_time"`
	EndTime      string `yaml:"end_time"`
	Addon        bool   `yaml:"addon"`
}

type PriceFixture struct {
	Standard        int      `yaml:"standard"`
	MarkedPrice     string   `yaml:"marked_price"`
	DiscountedPrice string   `yaml:"discounted_price"`
	PriceNotes      string   `yaml:"price_notes"`
	MinGroupSize    int      `yaml:"min_group_size"`
	MaxGroupSize    int      `yaml:"max_group_size"`
	StartingDates   []string `yaml:"starting_dates"`
}

type ArticleFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Status      int    `yaml:"status"`
	Description string `yaml:"description"`
	Content     string `yaml:"content"`
	Featured    bool   `yaml:"featured"`
}

// SeedResult counts what a seed run created.
type SeedResult struct {
	Packages int
	Articles int
	Items    int
	Prices   int
}

func LoadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

func nullDecimal(raw string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q is not a number", utils.ErrInvalidInput, raw)
	}
	return decimal.NewNullDecimal(d), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type seeder struct {
	svc     *appServices
	ownerID uuid.UUID
	places  map[string]uuid.UUID
	porters []uuid.UUID
	guides  []uuid.UUID
	result  SeedResult
}

// Seed loads a fixture through the services so content goes through the
// same sanitizing and slug rules as the admin.
func Seed(ctx context.Context, svc *appServices, f *Fixture, ownerID uuid.UUID) (SeedResult, error) {
	s := &seeder{svc: svc, ownerID: ownerID, places: map[string]uuid.UUID{}}

	for _, k := range f.Keywords {
		if _, err := svc.keywords.GetOrCreate(ctx, k); err != nil {
			return s.result, fmt.Errorf("keyword %q: %w", k, err)
		}
	}
	for _, p := range f.Porters {
		if err := s.porter(ctx, p); err != nil {
			return s.result, err
		}
	}
	for _, g := range f.Guides {
		if err := s.guide(ctx, g); err != nil {
			return s.result, err
		}
	}
	for i := range f.Packages {
		if err := s.pkg(ctx, &f.Packages[i], nil); err != nil {
			return s.result, err
		}
	}
	for _, a := range f.Articles {
		if err := s.article(ctx, a); err != nil {
			return s.result, err
		}
	}
	return s.result, nil
}

func (s *seeder) porter(ctx context.Context, p PorterFixture) error {
	ratio, err := nullDecimal(p.Ratio)
	if err != nil {
		return err
	}
	rate, err := nullDecimal(p.Rate)
	if err != nil {
		return err
	}
	porter, err := s.svc.staff.CreatePorter(ctx, request_models.PorterRequest{Ratio: ratio, Count: p.Count, Rate: rate, Remarks: p.Remarks})
	if err != nil {
		return fmt.Errorf("porter %q: %w", p.Remarks, err)
	}
	s.porters = append(s.porters, porter.ID)
	return nil
}

func (s *seeder) guide(ctx context.Context, g GuideFixture) error {
	rate, err := nullDecimal(g.Rate)
	if err != nil {
		return err
	}
	guide, err := s.svc.staff.CreateGuide(ctx, request_models.GuideRequest{Language: g.Language, Rate: rate, Remarks: g.Remarks})
	if err != nil {
		return fmt.Errorf("guide %q: %w", g.Language, err)
	}
	s.guides = append(s.guides, guide.ID)
	return nil
}

func (s *seeder) place(ctx context.Context, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if id, ok := s.places[name]; ok {
		return &id, nil
	}
	place, err := s.svc.itinerary.CreatePlace(ctx, request_models.PlaceRequest{Name: name})
	if errors.Is(err, utils.ErrPlaceExists) {
		existing, _, listErr := s.svc.itinerary.ListPlaces(ctx, name, utils.Page{Page: 1, PageSize: utils.MaxPageSize})
		if listErr != nil {
			return nil, listErr
		}
		for i := range existing {
			if existing[i].Name == name {
				place, err = &existing[i], nil
				break
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("place %q: %w", name, err)
	}
	s.places[name] = place.ID
	return &place.ID, nil
}

func displayable(title, slug, description string, status int) request_models.DisplayableRequest {
	if status == 0 {
		status = db_models.StatusPublished
	}
	return request_models.DisplayableRequest{Title: title, Slug: slug, Description: description, Status: status}
}

func (s *seeder) pkg(ctx context.Context, f *PackageFixture, parent *db_models.Package) error {
	kind := f.Kind
	if kind == "" {
		kind = db_models.KindPackage
	}
	req := request_models.PackageRequest{
		DisplayableRequest: displayable(f.Title, f.Slug, f.Description, f.Status),
		Content:            f.Content,
		Include:            f.Include,
		Exclude:            f.Exclude,
		FeaturedImage:      f.FeaturedImage,
		IsFeatured:         f.Featured,
		LoginRequired:      f.LoginRequired,
		PorterRequired:     f.PorterRequired,
		GuideRequired:      f.GuideRequired,
	}
	if f.PorterRequired {
		req.PorterIDs = s.porters
	}
	if f.GuideRequired {
		req.GuideIDs = s.guides
	}
	if parent != nil {
		req.ParentID = &parent.ID
	}
	for _, k := range f.Keywords {
		keyword, err := s.svc.keywords.GetOrCreate(ctx, k)
		if err != nil {
			return fmt.Errorf("keyword %q: %w", k, err)
		}
		req.KeywordIDs = append(req.KeywordIDs, keyword.ID)
	}

	created, err := s.svc.packages.Create(ctx, kind, req, s.ownerID)
	if err != nil {
		return fmt.Errorf("package %q: %w", f.Title, err)
	}
	s.result.Packages++

	if len(f.OtherInfo) > 0 {
		raw, err := yamlToJSON(f.OtherInfo)
		if err != nil {
			return err
		}
		if _, err := s.svc.packages.SetOtherInfo(ctx, created.ID, raw); err != nil {
			return fmt.Errorf("package %q other info: %w", f.Title, err)
		}
	}
	for _, item := range f.Itinerary {
		if err := s.item(ctx, created.ID, item); err != nil {
			return err
		}
	}
	for _, price := range f.Prices {
		if err := s.price(ctx, created.ID, price); err != nil {
			return err
		}
	}
	for i := range f.Children {
		if err := s.pkg(ctx, &f.Children[i], created); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) item(ctx context.Context, packageID uuid.UUID, f ItemFixture) error {
	from, err := s.place(ctx, f.From)
	if err != nil {
		return err
	}
	to, err := s.place(ctx, f.To)
	if err != nil {
		return err
	}
	req := request_models.ItineraryItemRequest{
		Title:           f.Title,
		Description:     f.Description,
		StartingPlaceID: from,
		EndingPlaceID:   to,
		StartingTime:    optional(f.StartingTime),
		EndTime:         optional(f.EndTime),
	}
	if f.Days != "" {
		days, err := nullDecimal(f.Days)
		if err != nil {
			return err
		}
		req.Days = &days.Decimal
	}
	if req.Description == "" {
		req.Description = f.Title
	}

	item, err := s.svc.itinerary.CreateItem(ctx, req, s.ownerID)
	if err != nil {
		return fmt.Errorf("itinerary item %q: %w", f.Title, err)
	}
	s.result.Items++
	if f.Addon {
		_, err = s.svc.itinerary.AddAddon(ctx, packageID, item.ID)
	} else {
		_, err = s.svc.itinerary.AddEntry(ctx, packageID, request_models.ItineraryEntryRequest{ItemID: item.ID})
	}
	if err != nil {
		return fmt.Errorf("itinerary item %q: %w", f.Title, err)
	}
	return nil
}

func (s *seeder) price(ctx context.Context, packageID uuid.UUID, f PriceFixture) error {
	marked, err := nullDecimal(f.MarkedPrice)
	if err != nil {
		return err
	}
	discounted, err := nullDecimal(f.DiscountedPrice)
	if err != nil {
		return err
	}
	req := request_models.PriceRequest{
		Standard:        f.Standard,
		MarkedPrice:     marked,
		DiscountedPrice: discounted,
		PriceNotes:      f.PriceNotes,
		MinGroupSize:    f.MinGroupSize,
		MaxGroupSize:    f.MaxGroupSize,
		StartingDates:   f.StartingDates,
	}
	if _, err := s.svc.prices.Create(ctx, packageID, req); err != nil {
		return fmt.Errorf("price %q: %w", f.PriceNotes, err)
	}
	s.result.Prices++
	return nil
}

func (s *seeder) article(ctx context.Context, f ArticleFixture) error {
	req := request_models.ArticleRequest{
		DisplayableRequest: displayable(f.Title, f.Slug, f.Description, f.Status),
		Content:            f.Content,
		IsFeatured:         f.Featured,
	}
	if _, err := s.svc.articles.Create(ctx, req); err != nil {
		return fmt.Errorf("article %q: %w", f.Title, err)
	}
	s.result.Articles++
	return nil
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load packages, articles and staff from a YAML fixture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("file")
			owner, _ := cmd.Flags().GetString("owner")

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			fixture, err := LoadFixture(file)
			if err != nil {
				return err
			}

			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			svc := newAppServices(rt.db, rt.cfg, rt.log)
			users, _, err := svc.users.ListUsers(cmd.Context(), owner, 1, 0)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				return fmt.Errorf("owner %s: %w", owner, utils.ErrUserNotFound)
			}

			result, err := Seed(cmd.Context(), svc, fixture, users[0].ID)
			if err != nil {
				return err
			}
			rt.log.Info("seeded ", result.Packages, " packages, ", result.Items, " itinerary items, ",
				result.Prices, " prices and ", result.Articles, " articles")
			return nil
		},
	}
	cmd.Flags().String("file", "", "Path to the YAML fixture")
	cmd.Flags().String("owner", "", "Email of the staff user recorded as provider")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

// yamlToJSON re-encodes the decoded YAML list as the JSON text stored in
// other_info.
func yamlToJSON(v []map[string]any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrInvalidOtherInfo, err)
	}
	return string(raw), nil
}
