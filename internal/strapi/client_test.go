package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func stubClient(fn roundTripFunc) *Client {
	c := New("http://cms.local", "token")
	c.http = &http.Client{Transport: fn}
	return c
}

func TestListFilesScopesToFolderPath(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer token" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		q := req.URL.Query()
		if q.Get("filters[$and][0][folderPath][$eq]") != "/1" {
			t.Fatalf("missing folderPath filter, query: %s", req.URL.RawQuery)
		}
		if q.Get("_q") != "" {
			t.Fatal("search param must be absent for folder browsing")
		}
		body := `{"results":[{"id":7,"name":"cat.png","mime":"image/png"}],"pagination":{"page":1,"pageSize":20,"pageCount":1,"total":1}}`
		return jsonResponse(200, body), nil
	})

	list, err := c.ListFiles(context.Background(), ListFilesOpts{FolderPath: "/1"})
	if err != nil {
		t.Fatalf("ListFiles returned error: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].ID != 7 {
		t.Fatalf("unexpected results: %+v", list.Results)
	}
	if list.Pagination.Total != 1 {
		t.Fatalf("unexpected pagination: %+v", list.Pagination)
	}
}

func TestListFilesSearchSuppressesFolder(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("_q") != "cat" {
			t.Fatalf("expected _q=cat, query: %s", req.URL.RawQuery)
		}
		for key := range q {
			if strings.Contains(key, "folderPath") {
				t.Fatalf("folderPath filter must be suppressed during search, got %s", key)
			}
		}
		return jsonResponse(200, `{"results":[],"pagination":{"page":1,"pageSize":20,"pageCount":0,"total":0}}`), nil
	})

	if _, err := c.ListFiles(context.Background(), ListFilesOpts{Search: "cat", FolderPath: "/1"}); err != nil {
		t.Fatalf("ListFiles returned error: %v", err)
	}
}

func TestListFilesDropsNamelessRecords(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		body := `{"results":[{"id":1,"name":"a.png","mime":"image/png"},{"id":2,"name":""}],"pagination":{"page":1,"pageSize":20,"pageCount":1,"total":2}}`
		return jsonResponse(200, body), nil
	})
	list, err := c.ListFiles(context.Background(), ListFilesOpts{})
	if err != nil {
		t.Fatalf("ListFiles returned error: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].ID != 1 {
		t.Fatalf("nameless record not dropped: %+v", list.Results)
	}
}

func TestListFilesNoToken(t *testing.T) {
	c := New("http://cms.local", "")
	if _, err := c.ListFiles(context.Background(), ListFilesOpts{}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestListFoldersRootUsesNullParent(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("filters[$and][0][parent][id][$null]") != "true" {
			t.Fatalf("expected null-parent filter, query: %s", req.URL.RawQuery)
		}
		return jsonResponse(200, `{"data":[{"id":3,"name":"docs","path":"/3"}]}`), nil
	})
	folders, err := c.ListFolders(context.Background(), ListFoldersOpts{})
	if err != nil {
		t.Fatalf("ListFolders returned error: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "docs" {
		t.Fatalf("unexpected folders: %+v", folders)
	}
}

func TestListFoldersScoped(t *testing.T) {
	parent := 9
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("filters[$and][0][parent][id][$eq]") != "9" {
			t.Fatalf("expected parent filter, query: %s", req.URL.RawQuery)
		}
		return jsonResponse(200, `{"data":[]}`), nil
	})
	if _, err := c.ListFolders(context.Background(), ListFoldersOpts{Folder: &parent}); err != nil {
		t.Fatalf("ListFolders returned error: %v", err)
	}
}

func TestGetFolderNotFound(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(404, `{"error":{"status":404}}`), nil
	})
	folder, err := c.GetFolder(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetFolder returned error: %v", err)
	}
	if folder != nil {
		t.Fatalf("expected nil folder for 404, got %+v", folder)
	}
}

func TestErrorResponseCarriesStatusAndBody(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(400, `{"error":{"message":"name already taken"}}`), nil
	})

	_, err := c.CreateFolder(context.Background(), "pets", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != 400 {
		t.Errorf("status = %d, want 400", apiErr.Status)
	}
	if !strings.Contains(apiErr.Body, "name already taken") {
		t.Errorf("body snippet missing server message: %q", apiErr.Body)
	}
}

func TestCreateFolderSendsParent(t *testing.T) {
	parent := 4
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", req.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "new" || body["parent"] != float64(4) {
			t.Fatalf("unexpected body: %v", body)
		}
		return jsonResponse(200, `{"data":{"id":10,"name":"new","path":"/4/10"}}`), nil
	})
	folder, err := c.CreateFolder(context.Background(), "new", &parent)
	if err != nil {
		t.Fatalf("CreateFolder returned error: %v", err)
	}
	if folder.ID != 10 {
		t.Fatalf("unexpected folder: %+v", folder)
	}
}

func TestUploadMultipart(t *testing.T) {
	folder := 2
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/upload" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if len(req.MultipartForm.File["files"]) != 2 {
			t.Fatalf("expected 2 file parts, got %d", len(req.MultipartForm.File["files"]))
		}
		info := req.MultipartForm.Value["fileInfo"]
		if len(info) != 1 || !strings.Contains(info[0], `"folder":2`) {
			t.Fatalf("unexpected fileInfo: %v", info)
		}
		return jsonResponse(200, `[{"id":20,"name":"a.png","mime":"image/png"},{"id":21,"name":"b.png","mime":"image/png"}]`), nil
	})

	files := []LocalFile{
		{Name: "a.png", Reader: strings.NewReader("aaa")},
		{Name: "b.png", Reader: strings.NewReader("bbb")},
	}
	assets, err := c.Upload(context.Background(), files, &folder)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if len(assets) != 2 || assets[0].ID != 20 {
		t.Fatalf("unexpected assets: %+v", assets)
	}
}

func TestUpdateFileHandlesArrayResponse(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.RawQuery != "id=7" {
			t.Fatalf("unexpected query %s", req.URL.RawQuery)
		}
		return jsonResponse(200, `[{"id":7,"name":"renamed.png","mime":"image/png"}]`), nil
	})
	asset, err := c.UpdateFile(context.Background(), 7, FileInfo{Name: "renamed.png"}, nil)
	if err != nil {
		t.Fatalf("UpdateFile returned error: %v", err)
	}
	if asset.Name != "renamed.png" {
		t.Fatalf("unexpected asset: %+v", asset)
	}
}

func TestDeleteFileErrorStatus(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(500, `{}`), nil
	})
	if err := c.DeleteFile(context.Background(), 1); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
