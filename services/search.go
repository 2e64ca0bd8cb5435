package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CPU-commits/Intranet_BAcademix/db"
	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/CPU-commits/Intranet_BAcademix/utils"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const REINDEX_WEIGHT = 5

var ErrSearchDisabled = errors.New("search is not configured")

// SearchService mirrors courses into Elasticsearch. With a nil client every
// write is a no-op and Search answers 503.
type SearchService struct {
	es     *elasticsearch.Client
	logger *zap.Logger
}

func (s *SearchService) Enabled() bool {
	return s != nil && s.es != nil
}

func courseContent(course bson.M) ([]byte, error) {
	raw, err := bson.Marshal(course)
	if err != nil {
		return nil, err
	}
	var content models.ContentCourse
	if err := bson.Unmarshal(raw, &content); err != nil {
		return nil, err
	}
	return json.Marshal(content)
}

func (s *SearchService) indexItem(id string, data []byte) esutil.BulkIndexerItem {
	return esutil.BulkIndexerItem{
		Action:     "index",
		DocumentID: id,
		Body:       bytes.NewReader(data),
		OnFailure: func(
			ctx context.Context,
			item esutil.BulkIndexerItem,
			response esutil.BulkIndexerResponseItem,
			err error,
		) {
			s.logger.Warn(
				"index course",
				zap.String("id", item.DocumentID),
				zap.String("reason", response.Error.Reason),
				zap.Error(err),
			)
		},
	}
}

// IndexCourse never fails the caller, the store stays the source of truth.
func (s *SearchService) IndexCourse(ctx context.Context, id string, course bson.M) {
	if !s.Enabled() || id == "" {
		return
	}
	data, err := courseContent(course)
	if err != nil {
		s.logger.Warn("course content", zap.String("id", id), zap.Error(err))
		return
	}
	bi, err := models.NewBulkCourse(s.es)
	if err != nil {
		s.logger.Warn("bulk indexer", zap.Error(err))
		return
	}
	if err := bi.Add(ctx, s.indexItem(id, data)); err != nil {
		s.logger.Warn("index course", zap.String("id", id), zap.Error(err))
	}
	if err := bi.Close(ctx); err != nil {
		s.logger.Warn("flush course index", zap.Error(err))
	}
}

func (s *SearchService) RemoveCourse(ctx context.Context, id string) {
	if !s.Enabled() {
		return
	}
	response, err := s.es.Delete(
		models.COURSES_INDEX,
		id,
		s.es.Delete.WithContext(ctx),
	)
	if err != nil {
		s.logger.Warn("remove course from index", zap.String("id", id), zap.Error(err))
		return
	}
	defer response.Body.Close()
	if response.IsError() && response.StatusCode != 404 {
		s.logger.Warn(
			"remove course from index",
			zap.String("id", id),
			zap.String("status", response.Status()),
		)
	}
}

func (s *SearchService) Reindex(ctx context.Context, courses []bson.M) *res.ErrorRes {
	if !s.Enabled() {
		return nil
	}
	bi, err := models.NewBulkCourse(s.es)
	if err != nil {
		return res.Unavailable(err, "Search unavailable")
	}
	errRes := utils.Concurrency(REINDEX_WEIGHT, len(courses), func(index int, setError func(errRes *res.ErrorRes)) {
		id := idToString(courses[index]["_id"])
		data, err := courseContent(courses[index])
		if err != nil || id == "" {
			s.logger.Warn("skip course on reindex", zap.String("id", id), zap.Error(err))
			return
		}
		if err := bi.Add(ctx, s.indexItem(id, data)); err != nil {
			setError(res.Unavailable(err, "Search unavailable"))
		}
	})
	if err := bi.Close(ctx); err != nil && errRes == nil {
		errRes = res.Unavailable(err, "Search unavailable")
	}
	if errRes != nil {
		return errRes
	}
	stats := bi.Stats()
	s.logger.Info(
		"courses reindexed",
		zap.Uint64("indexed", stats.NumIndexed),
		zap.Uint64("failed", stats.NumFailed),
	)
	return nil
}

func searchQuery(search string) (*bytes.Reader, error) {
	term, err := json.Marshal(search + "*")
	if err != nil {
		return nil, err
	}
	simpleQuery := fmt.Sprintf(
		`"simple_query_string": { "query": %s, "analyzer": "standard" }`,
		term,
	)
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(db.ConstructQuery(simpleQuery)); err != nil {
		return nil, err
	}
	return bytes.NewReader(buf.Bytes()), nil
}

func (s *SearchService) Search(ctx context.Context, search string) (interface{}, *res.ErrorRes) {
	if !s.Enabled() {
		return nil, res.Unavailable(ErrSearchDisabled, "Search unavailable")
	}
	query, err := searchQuery(search)
	if err != nil {
		return nil, res.ServerError(err)
	}
	response, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(models.COURSES_INDEX),
		s.es.Search.WithBody(query),
		s.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, res.Unavailable(err, "Search unavailable")
	}
	defer response.Body.Close()
	if response.IsError() {
		return nil, res.Unavailable(fmt.Errorf("elasticsearch: %s", response.Status()), "Search unavailable")
	}

	var mapRes map[string]interface{}
	if err := json.NewDecoder(response.Body).Decode(&mapRes); err != nil {
		return nil, res.ServerError(err)
	}
	return mapRes["hits"], nil
}

func NewSearchService(es *elasticsearch.Client, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		es:     es,
		logger: logger,
	}
}
