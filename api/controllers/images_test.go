package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storelane/storelane-backend/internal/stores"
	pkgerrors "github.com/storelane/storelane-backend/pkg/errors"
)

type stubAssetService struct {
	dto *stores.StoreDTO
	err error

	replacedStoreID  string
	replacedFilename string
	replacedData     []byte
	cleared          bool
}

func (s *stubAssetService) ReplaceImage(_ context.Context, storeID, filename string, data []byte, _ string) (*stores.StoreDTO, error) {
	s.replacedStoreID = storeID
	s.replacedFilename = filename
	s.replacedData = data
	return s.dto, s.err
}

func (s *stubAssetService) ClearImage(_ context.Context, storeID string) (*stores.StoreDTO, error) {
	s.cleared = true
	return s.dto, s.err
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestStoreReplaceImage(t *testing.T) {
	svc := &stubAssetService{dto: &stores.StoreDTO{StoreID: "ABCD2345"}}
	handler := StoreReplaceImage(svc, nil, 1<<20)

	body, contentType := multipartBody(t, "file", "photo.png", []byte("png-bytes"))
	req := withStoreID(httptest.NewRequest(http.MethodPut, "/api/v1/stores/ABCD2345/image", body), "ABCD2345")
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.replacedStoreID != "ABCD2345" {
		t.Fatalf("expected route store id got %q", svc.replacedStoreID)
	}
	if svc.replacedFilename != "photo.png" {
		t.Fatalf("expected filename got %q", svc.replacedFilename)
	}
	if string(svc.replacedData) != "png-bytes" {
		t.Fatalf("expected file bytes to reach the service")
	}
}

func TestStoreReplaceImageMissingFile(t *testing.T) {
	handler := StoreReplaceImage(&stubAssetService{}, nil, 1<<20)

	body, contentType := multipartBody(t, "attachment", "photo.png", []byte("png-bytes"))
	req := withStoreID(httptest.NewRequest(http.MethodPut, "/api/v1/stores/ABCD2345/image", body), "ABCD2345")
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestStoreReplaceImageUploadFailure(t *testing.T) {
	svc := &stubAssetService{err: pkgerrors.New(pkgerrors.CodeUploadFailed, "asset upload failed")}
	handler := StoreReplaceImage(svc, nil, 1<<20)

	body, contentType := multipartBody(t, "file", "photo.png", []byte("png-bytes"))
	req := withStoreID(httptest.NewRequest(http.MethodPut, "/api/v1/stores/ABCD2345/image", body), "ABCD2345")
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", rec.Code)
	}
}

func TestStoreClearImage(t *testing.T) {
	svc := &stubAssetService{dto: &stores.StoreDTO{StoreID: "ABCD2345"}}
	handler := StoreClearImage(svc, nil)

	req := withStoreID(httptest.NewRequest(http.MethodDelete, "/api/v1/stores/ABCD2345/image", nil), "ABCD2345")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !svc.cleared {
		t.Fatalf("expected clear to reach the service")
	}
}
