package graphapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"simplifytour/internal/models/request_models"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/middleware"
)

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler serves GraphQL over GET, JSON POST and multipart POST.
type Handler struct {
	schema         graphql.Schema
	auth           middleware.Authenticator
	cookieName     string
	maxUploadBytes int64
	log            logger.Logger
}

func NewHandler(schema graphql.Schema, auth middleware.Authenticator, cookieName string, maxUploadBytes int64, log logger.Logger) *Handler {
	return &Handler{
		schema:         schema,
		auth:           auth,
		cookieName:     cookieName,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *Handler) Serve(c *gin.Context) {
	req, closers, err := h.parse(c)
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": err.Error()}}})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": "Must provide query string."}}})
		return
	}
	if c.Request.Method == http.MethodGet && !readOnly(req.Query) {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"errors": []gin.H{{"message": "Can only perform a query operation from a GET request."}}})
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		if token := middleware.TokenFromRequest(c.Request, h.cookieName); token != "" {
			if u, err := h.auth.Authenticate(c.Request.Context(), token); err == nil {
				user = u
			}
		}
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        withRequest(c.Request.Context(), c, user),
	})
	c.JSON(http.StatusOK, result)
}

// readOnly reports whether every operation in the document is a query.
// Documents that fail to parse are left to graphql.Do to report.
func readOnly(query string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return true
	}
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok && op.Operation != ast.OperationTypeQuery {
			return false
		}
	}
	return true
}

func (h *Handler) parse(c *gin.Context) (*request, []io.Closer, error) {
	req := &request{}
	switch {
	case c.Request.Method == http.MethodGet:
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if vars := c.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return nil, nil, errors.New("variables are invalid JSON")
			}
		}
		return req, nil, nil

	case strings.HasPrefix(c.ContentType(), "multipart/form-data"):
		return h.parseMultipart(c)

	default:
		if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
			return nil, nil, errors.New("POST body sent invalid JSON")
		}
		return req, nil, nil
	}
}

// parseMultipart implements the GraphQL multipart request layout: an
// "operations" JSON document, a "map" from file field to variable paths and
// the file parts themselves.
func (h *Handler) parseMultipart(c *gin.Context) (*request, []io.Closer, error) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, nil, fmt.Errorf("invalid multipart request: %w", err)
	}
	form := c.Request.MultipartForm

	operations := firstValue(form, "operations")
	if operations == "" {
		return nil, nil, errors.New("missing multipart field 'operations'")
	}
	req := &request{}
	if err := json.Unmarshal([]byte(operations), req); err != nil {
		return nil, nil, errors.New("multipart field 'operations' is invalid JSON")
	}
	if req.Variables == nil {
		req.Variables = map[string]interface{}{}
	}

	var fileMap map[string][]string
	if raw := firstValue(form, "map"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fileMap); err != nil {
			return nil, nil, errors.New("multipart field 'map' is invalid JSON")
		}
	}

	var closers []io.Closer
	for key, paths := range fileMap {
		headers := form.File[key]
		if len(headers) == 0 {
			return nil, closers, fmt.Errorf("file %q missing from request", key)
		}
		header := headers[0]
		f, err := header.Open()
		if err != nil {
			return nil, closers, err
		}
		closers = append(closers, f)

		upload := &request_models.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     f,
		}
		for _, p := range paths {
			if err := setPath(req, p, upload); err != nil {
				return nil, closers, err
			}
		}
	}
	return req, closers, nil
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// setPath places value at a dotted path such as "variables.input.avatar" or
// "variables.files.0".
func setPath(req *request, path string, value interface{}) error {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || parts[0] != "variables" {
		return fmt.Errorf("invalid file map path %q", path)
	}

	var parent interface{} = req.Variables
	for i, key := range parts[1:] {
		last := i == len(parts)-2
		switch node := parent.(type) {
		case map[string]interface{}:
			if last {
				node[key] = value
				return nil
			}
			parent = node[key]
		case []interface{}:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return fmt.Errorf("invalid file map path %q", path)
			}
			if last {
				node[idx] = value
				return nil
			}
			parent = node[idx]
		default:
			return fmt.Errorf("invalid file map path %q", path)
		}
	}
	return nil
}
