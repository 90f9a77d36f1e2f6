package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	"github.com/jb-laurans/dockitback/pkg/helpers"
)

var (
	ErrShipNotFound = errors.New("ship not found")
	ErrNotShipOwner = errors.New("ship belongs to another owner")
)

type ShipService struct {
	Ships     repo.ShipRepository
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewShipService(ships repo.ShipRepository, users repo.UserRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ShipService {
	return &ShipService{
		Ships:     ships,
		Users:     users,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		ES:        es,
		ESIndex:   esIndex,
		Logger:    logger,
	}
}

func (s *ShipService) List(f repo.ShipFilters) ([]*entity.Ship, error) {
	return s.Ships.List(f)
}

func (s *ShipService) Get(id int64) (*entity.Ship, error) {
	ship, err := s.Ships.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrShipNotFound
		}
		return nil, err
	}
	return ship, nil
}

// Create registers a ship under the owner. The denormalized owner
// label comes from the owner's company when set, their name otherwise.
func (s *ShipService) Create(ctx context.Context, ownerID int64, ship *entity.Ship) (*entity.Ship, error) {
	owner, err := s.Users.GetByID(ownerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	ship.OwnerID = owner.ID
	ship.Owner = owner.DisplayName()

	if err := s.Ships.Create(ship); err != nil {
		return nil, err
	}
	s.indexShip(ctx, ship)
	return ship, nil
}

func (s *ShipService) MyShips(ownerID int64) ([]*entity.Ship, error) {
	return s.Ships.ListByOwner(ownerID)
}

// AddImage uploads the image to GCS and appends its public URL to the
// ship's gallery. Only the ship's owner may do this.
func (s *ShipService) AddImage(ctx context.Context, shipID, ownerID int64, r io.Reader, filename, contentType string) (*entity.Ship, error) {
	ship, err := s.Get(shipID)
	if err != nil {
		return nil, err
	}
	if ship.OwnerID != ownerID {
		return nil, ErrNotShipOwner
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("ships", strconv.FormatInt(shipID, 10), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	ship.Images = append(ship.Images, url)
	if err := s.Ships.UpdateImages(ship.ID, ship.Images); err != nil {
		return nil, err
	}
	s.indexShip(ctx, ship)
	return ship, nil
}

// indexShip mirrors the ship into Elasticsearch, best effort. Listing
// and matching never depend on the index being current.
func (s *ShipService) indexShip(ctx context.Context, ship *entity.Ship) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           ship.ID,
		"name":         ship.Name,
		"type":         ship.Type,
		"dwt":          ship.DWT,
		"current_port": ship.CurrentPort,
		"owner":        ship.Owner,
		"created_at":   ship.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(ship.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ship_id", ship.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("ship_id", ship.ID).Warn("es index response error")
	}
}

// Search runs a multi_match query over name, port and owner.
func (s *ShipService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "current_port", "owner"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
