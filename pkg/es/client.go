// Package es 提供了与 Elasticsearch 交互的客户端功能。
package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"resource-hub-go/internal/config"
	"resource-hub-go/internal/model"
	"resource-hub-go/pkg/log"
)

const resourceMapping = `{
	"mappings": {
		"properties": {
			"resource_id":   { "type": "long" },
			"original_name": { "type": "text", "fields": { "raw": { "type": "keyword", "ignore_above": 256 } } },
			"mime_type":     { "type": "keyword" },
			"size_bytes":    { "type": "long" },
			"category_id":   { "type": "long" },
			"category_name": { "type": "keyword" },
			"created_at":    { "type": "date" }
		}
	}
}`

// Client 封装了 Elasticsearch 客户端及资源索引名。
type Client struct {
	es    *elasticsearch.Client
	index string
}

// NewClient 初始化 Elasticsearch 客户端。
func NewClient(cfg config.ElasticsearchConfig) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.AddressList(),
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("init elasticsearch client: %w", err)
	}
	return &Client{es: es, index: cfg.IndexName}, nil
}

// EnsureIndex 检查索引是否存在，如果不存在则创建它。
func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("检查索引是否存在时出错: %w", err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		log.Infof("索引 '%s' 已存在", c.index)
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("检查索引 '%s' 是否存在时收到意外的状态码: %d", c.index, res.StatusCode)
	}

	res, err = c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(resourceMapping)),
	)
	if err != nil {
		return fmt.Errorf("创建索引 '%s' 失败: %w", c.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", c.index, res.String())
	}

	log.Infof("索引 '%s' 创建成功", c.index)
	return nil
}

// IndexResource 将单个资源文档写入索引，文档 ID 即资源 ID，重复写入是幂等的。
func (c *Client) IndexResource(ctx context.Context, doc model.ResourceDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: strconv.FormatInt(doc.ResourceID, 10),
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("索引文档到 Elasticsearch 出错: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source model.ResourceDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchResourceIDs runs a multi_match query over name and category and returns
// matching resource ids by relevance.
func (c *Client) SearchResourceIDs(ctx context.Context, query string, size int) ([]int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("empty search query")
	}
	payload := map[string]interface{}{
		"size":    size,
		"_source": []string{"resource_id"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"original_name^2", "category_name"},
				"fuzziness": "AUTO",
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ResourceID)
	}
	return ids, nil
}
