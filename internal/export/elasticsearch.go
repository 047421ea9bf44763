// internal/export/elasticsearch.go
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"livestock-engine/internal/common/errors"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Exporter receives finished research workflow results.
type Exporter interface {
	Export(ctx context.Context, result models.ResearchDataWorkflowResult) error
}

// ElasticsearchExporter indexes the result document plus one document per
// anonymized record.
type ElasticsearchExporter struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearchExporter(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchExporter {
	return &ElasticsearchExporter{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "export"}),
	}
}

func (e *ElasticsearchExporter) Export(ctx context.Context, result models.ResearchDataWorkflowResult) error {
	summary := result
	summary.Records = nil // records go through the bulk body, keep the summary light

	if err := e.indexDoc(ctx, result.ID, summary); err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, rec := range result.Records {
		meta := map[string]map[string]string{
			"index": {"_index": e.index, "_id": fmt.Sprintf("%s-%d", result.ID, i)},
		}
		metaLine, _ := json.Marshal(meta)
		recLine, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal research record: %w", err)
		}
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(recLine)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return nil
	}

	res, err := e.client.Bulk(bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithContext(ctx),
		e.client.Bulk.WithIndex(e.index),
	)
	if err != nil {
		return errors.NewExportFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewExportFailedError(fmt.Errorf("bulk index: %s", res.Status()))
	}

	e.logger.Info("research data exported", map[string]interface{}{
		"resultId":    result.ID,
		"recordCount": result.RecordCount,
	})
	return nil
}

func (e *ElasticsearchExporter) indexDoc(ctx context.Context, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal export doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return errors.NewExportFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewExportFailedError(fmt.Errorf("index doc: %s", res.Status()))
	}
	return nil
}
