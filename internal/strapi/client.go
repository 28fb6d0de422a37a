package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the upload plugin of a Strapi-compatible CMS.
type Client struct {
	http    *http.Client
	base    string
	token   string
	metrics *Metrics
}

// New creates a client for the given instance. The base URL is the CMS root,
// e.g. "http://localhost:1337".
func New(base, token string) *Client {
	metrics := NewMetrics()
	opts := DefaultTransportOptions()
	opts.Metrics = metrics
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second, Transport: newTransport(nil, opts)},
		base:    strings.TrimRight(base, "/"),
		token:   token,
		metrics: metrics,
	}
}

// MetricsSnapshot exposes the transport counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot { return c.metrics.Snapshot() }

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c.token == "" {
		return nil, errors.New("token missing")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return req, nil
}

// APIError is a non-2xx response from the server. Body carries the first
// part of the response so validation messages survive into the UI.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

func (c *Client) doJSON(req *http.Request, op string, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &APIError{Op: op, Status: res.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// addFilters encodes structured filters under filters[$and][i].
func addFilters(q url.Values, filters []FilterParam, start int) int {
	i := start
	for _, f := range filters {
		if f.Field == "" || f.Op == "" {
			continue
		}
		q.Set(fmt.Sprintf("filters[$and][%d][%s][%s]", i, f.Field, f.Op), f.Value)
		i++
	}
	return i
}

// ListFiles fetches one page of assets. When opts.Search is set the folder
// scope is dropped and the server searches across all folders; otherwise the
// listing is constrained to opts.FolderPath.
func (c *Client) ListFiles(ctx context.Context, opts ListFilesOpts) (FileList, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("pageSize", strconv.Itoa(opts.PageSize))
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	q.Set("populate", "folder")
	if opts.Search != "" {
		q.Set("_q", opts.Search)
		addFilters(q, opts.Filters, 0)
	} else {
		path := opts.FolderPath
		if path == "" {
			path = "/"
		}
		n := addFilters(q, opts.Filters, 0)
		q.Set(fmt.Sprintf("filters[$and][%d][folderPath][$eq]", n), path)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/upload/files?"+q.Encode(), nil)
	if err != nil {
		return FileList{}, err
	}
	var list FileList
	if err := c.doJSON(req, "files.list", &list); err != nil {
		return FileList{}, err
	}
	// Records without a name are folders leaking through older servers.
	kept := list.Results[:0]
	for _, a := range list.Results {
		if a.Name != "" {
			kept = append(kept, a)
		}
	}
	list.Results = kept
	return list, nil
}

type folderListResp struct {
	Data []Folder `json:"data"`
}

// ListFolders fetches the child folders of opts.Folder (root when nil), or
// searches folder names across the library when opts.Search is set.
func (c *Client) ListFolders(ctx context.Context, opts ListFoldersOpts) ([]Folder, error) {
	q := url.Values{}
	q.Set("pageSize", "100")
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Search != "" {
		q.Set("_q", opts.Search)
	} else if opts.Folder != nil {
		q.Set("filters[$and][0][parent][id][$eq]", strconv.Itoa(*opts.Folder))
	} else {
		q.Set("filters[$and][0][parent][id][$null]", "true")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/upload/folders?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var payload folderListResp
	if err := c.doJSON(req, "folders.list", &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

type folderResp struct {
	Data Folder `json:"data"`
}

// GetFolder fetches a single folder with its parent chain populated.
// Returns nil without error on 404 so navigation survives deleted folders.
func (c *Client) GetFolder(ctx context.Context, id int) (*Folder, error) {
	path := fmt.Sprintf("/upload/folders/%d?populate[parent][populate][0]=parent", id)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode != 200 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &APIError{Op: "folders.get", Status: res.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	var payload folderResp
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// FolderStructure fetches the full folder tree.
func (c *Client) FolderStructure(ctx context.Context) ([]FolderNode, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/upload/folder-structure", nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Data []FolderNode `json:"data"`
	}
	if err := c.doJSON(req, "folders.structure", &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CreateFolder creates a folder under parent (root when nil).
func (c *Client) CreateFolder(ctx context.Context, name string, parent *int) (Folder, error) {
	body, err := json.Marshal(map[string]any{"name": name, "parent": parent})
	if err != nil {
		return Folder{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/upload/folders", bytes.NewReader(body))
	if err != nil {
		return Folder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	var payload folderResp
	if err := c.doJSON(req, "folders.create", &payload); err != nil {
		return Folder{}, err
	}
	return payload.Data, nil
}

// UpdateFolder renames a folder and/or moves it under a new parent.
// parentSet distinguishes "move to root" (true, nil) from "keep" (false).
func (c *Client) UpdateFolder(ctx context.Context, id int, name string, parent *int, parentSet bool) (Folder, error) {
	patch := map[string]any{"name": name}
	if parentSet {
		patch["parent"] = parent
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return Folder{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/upload/folders/%d", id), bytes.NewReader(body))
	if err != nil {
		return Folder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	var payload folderResp
	if err := c.doJSON(req, "folders.update", &payload); err != nil {
		return Folder{}, err
	}
	return payload.Data, nil
}

// DeleteFolder deletes a folder and its contents.
func (c *Client) DeleteFolder(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/upload/folders/%d", id), nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, "folders.delete", nil)
}

// LocalFile is one file to upload.
type LocalFile struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Upload sends files as one multipart request, placing them in folderID
// (root when nil). Abortable through ctx; partially uploaded server-side
// artifacts are the server's cleanup problem, not ours.
func (c *Client) Upload(ctx context.Context, files []LocalFile, folderID *int) ([]Asset, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to upload")
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if folderID != nil {
		info, err := json.Marshal(map[string]any{"folder": *folderID})
		if err != nil {
			return nil, err
		}
		if err := mw.WriteField("fileInfo", string(info)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var assets []Asset
	if err := c.doJSON(req, "files.upload", &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateFile patches an asset's metadata and optionally replaces its file
// content. The endpoint is the same multipart POST as Upload, keyed by id.
func (c *Client) UpdateFile(ctx context.Context, id int, info FileInfo, replacement *LocalFile) (Asset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if replacement != nil {
		part, err := mw.CreateFormFile("files", replacement.Name)
		if err != nil {
			return Asset{}, err
		}
		if _, err := io.Copy(part, replacement.Reader); err != nil {
			return Asset{}, fmt.Errorf("read %s: %w", replacement.Name, err)
		}
	}
	patch := map[string]any{
		"name":            info.Name,
		"alternativeText": info.AlternativeText,
		"caption":         info.Caption,
	}
	if info.FolderSet {
		patch["folder"] = info.Folder
	}
	encoded, err := json.Marshal(patch)
	if err != nil {
		return Asset{}, err
	}
	if err := mw.WriteField("fileInfo", string(encoded)); err != nil {
		return Asset{}, err
	}
	if err := mw.Close(); err != nil {
		return Asset{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload?id="+strconv.Itoa(id), &buf)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return Asset{}, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Asset{}, fmt.Errorf("files.update status %s", res.Status)
	}
	// Depending on server version the payload is a single asset or a
	// one-element array.
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Asset{}, err
	}
	var one Asset
	if err := json.Unmarshal(raw, &one); err == nil && one.ID != 0 {
		return one, nil
	}
	var many []Asset
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0], nil
	}
	return Asset{}, errors.New("files.update: unexpected response shape")
}

// DeleteFile deletes an asset.
func (c *Client) DeleteFile(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/upload/files/%d", id), nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, "files.delete", nil)
}
