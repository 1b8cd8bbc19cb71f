package media

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"chatmedia/internal/models"
)

type fakeThumbnailer struct {
	calls int
	err   error
}

func (f *fakeThumbnailer) CreateThumbnail(srcPath, dstPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dstPath, []byte("thumb"), 0o644)
}

type fakeExtractor struct {
	calls int
	text  string
	err   error
}

func (f *fakeExtractor) ExtractText(path string, maxPages int) (string, error) {
	f.calls++
	return f.text, f.err
}

func newTestService(t *testing.T, thumbs Thumbnailer, extractor TextExtractor) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewService(Options{
		BaseDir:       dir,
		Thumbnailer:   thumbs,
		TextExtractor: extractor,
	}), dir
}

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func ingestUpload(t *testing.T, svc *Service, filename string, payload []byte) (*models.Attachment, error) {
	t.Helper()
	return svc.Ingest(Upload{Reader: bytes.NewReader(payload), Filename: filename}, "http://test")
}

func TestIngestImageStoresOriginalAndThumbnail(t *testing.T) {
	svc, dir := newTestService(t, NewThumbnailer(), &fakeExtractor{})
	payload := makeJPEG(t, 400, 300)

	att, err := ingestUpload(t, svc, "photo.jpg", payload)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if att.Type != string(CategoryImage) {
		t.Errorf("expected type image, got %q", att.Type)
	}
	if att.MimeType != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", att.MimeType)
	}
	if att.FileSize != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), att.FileSize)
	}
	if att.FileName != "photo.jpg" {
		t.Errorf("expected display name photo.jpg, got %q", att.FileName)
	}
	if att.FileURL != "http://test/uploads/chat/"+att.ID+".jpg" {
		t.Errorf("unexpected file url %q", att.FileURL)
	}
	if att.ThumbnailURL == "" {
		t.Fatal("expected thumbnail url")
	}

	stored, err := os.ReadFile(ArtifactPath(dir, att.ID, "jpg"))
	if err != nil {
		t.Fatalf("read stored original: %v", err)
	}
	if !bytes.Equal(stored, payload) {
		t.Fatal("stored original differs from upload")
	}

	thumbFile, err := os.Open(ThumbnailPath(dir, att.ID, "jpg"))
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	defer thumbFile.Close()
	thumb, err := jpeg.Decode(thumbFile)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	bounds := thumb.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 150 {
		t.Errorf("expected 200x150 thumbnail, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestIngestThumbnailFailureIsNonFatal(t *testing.T) {
	thumbs := &fakeThumbnailer{err: errors.New("no image capability")}
	svc, dir := newTestService(t, thumbs, &fakeExtractor{})

	att, err := ingestUpload(t, svc, "photo.jpg", makeJPEG(t, 64, 64))
	if err != nil {
		t.Fatalf("ingest with failing thumbnailer: %v", err)
	}
	if thumbs.calls != 1 {
		t.Fatalf("expected one thumbnail attempt, got %d", thumbs.calls)
	}
	if att.ThumbnailURL != "" {
		t.Errorf("expected no thumbnail url, got %q", att.ThumbnailURL)
	}
	if _, err := os.Stat(ArtifactPath(dir, att.ID, "jpg")); err != nil {
		t.Fatalf("original missing after thumbnail failure: %v", err)
	}
}

func TestIngestPDFTextIsCapped(t *testing.T) {
	extractor := &fakeExtractor{text: strings.Repeat("é", 6000)}
	svc, _ := newTestService(t, &fakeThumbnailer{}, extractor)

	att, err := ingestUpload(t, svc, "report.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("expected one extraction, got %d", extractor.calls)
	}
	if n := utf8.RuneCountInString(att.ExtractedText); n != 5000 {
		t.Errorf("expected 5000 extracted chars, got %d", n)
	}
	if att.Type != string(CategoryDocument) {
		t.Errorf("expected type document, got %q", att.Type)
	}
	if att.ThumbnailURL != "" {
		t.Errorf("unexpected thumbnail for pdf: %q", att.ThumbnailURL)
	}
}

func TestIngestPDFExtractionFailureIsNonFatal(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("parser unavailable")}
	svc, _ := newTestService(t, &fakeThumbnailer{}, extractor)

	att, err := ingestUpload(t, svc, "broken.pdf", []byte("not really a pdf"))
	if err != nil {
		t.Fatalf("ingest with failing extractor: %v", err)
	}
	if att.ExtractedText != "" {
		t.Errorf("expected no extracted text, got %q", att.ExtractedText)
	}
}

func TestIngestTextFileSkipsDerivations(t *testing.T) {
	thumbs := &fakeThumbnailer{}
	extractor := &fakeExtractor{text: "should not appear"}
	svc, _ := newTestService(t, thumbs, extractor)

	att, err := ingestUpload(t, svc, "notes.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if thumbs.calls != 0 || extractor.calls != 0 {
		t.Fatalf("derivations ran for a text file: thumbs=%d extract=%d", thumbs.calls, extractor.calls)
	}
	if att.MimeType != "text/plain" {
		t.Errorf("expected text/plain, got %q", att.MimeType)
	}
}

func TestIngestRejectsBeforeTouchingStorage(t *testing.T) {
	svc, dir := newTestService(t, &fakeThumbnailer{}, &fakeExtractor{})

	_, err := ingestUpload(t, svc, "archive.zip", []byte("zipzip"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read base dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("storage touched on rejected upload: %v", entries)
	}
}

func TestIngestRemovesPartialArtifactOnSaveFailure(t *testing.T) {
	svc, dir := newTestService(t, &fakeThumbnailer{}, &fakeExtractor{})

	_, err := svc.Ingest(Upload{Reader: &errReadSeeker{size: 1024}, Filename: "photo.jpg"}, "http://test")
	if err == nil {
		t.Fatal("expected save failure to propagate")
	}
	entries, readErr := os.ReadDir(ArtifactDir(dir))
	if readErr != nil {
		t.Fatalf("read artifact dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("partial artifact left behind: %v", entries)
	}
}

func TestIngestSanitizesDisplayName(t *testing.T) {
	svc, dir := newTestService(t, &fakeThumbnailer{}, &fakeExtractor{})

	att, err := ingestUpload(t, svc, "../../etc/cover letter.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if att.FileName != "cover_letter.pdf" {
		t.Errorf("expected sanitized name, got %q", att.FileName)
	}
	// storage path comes from the generated id, not the client name
	if _, err := os.Stat(ArtifactPath(dir, att.ID, "pdf")); err != nil {
		t.Fatalf("stored artifact missing: %v", err)
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	svc, dir := newTestService(t, &fakeThumbnailer{}, &fakeExtractor{})

	att, err := ingestUpload(t, svc, "photo.jpg", makeJPEG(t, 32, 32))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := os.Stat(ThumbnailPath(dir, att.ID, "jpg")); err != nil {
		t.Fatalf("thumbnail missing before delete: %v", err)
	}

	if err := svc.Remove(att.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(ArtifactPath(dir, att.ID, "jpg")); !os.IsNotExist(err) {
		t.Fatalf("original still present after delete: %v", err)
	}
	if _, err := os.Stat(ThumbnailPath(dir, att.ID, "jpg")); !os.IsNotExist(err) {
		t.Fatalf("thumbnail still present after delete: %v", err)
	}

	if err := svc.Remove(att.ID); !errors.Is(err, ErrAttachmentNotFound) {
		t.Fatalf("second delete: expected ErrAttachmentNotFound, got %v", err)
	}
}

func TestRemovePDFWithoutThumbnail(t *testing.T) {
	svc, _ := newTestService(t, &fakeThumbnailer{}, &fakeExtractor{text: "contents"})

	att, err := ingestUpload(t, svc, "report.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := svc.Remove(att.ID); err != nil {
		t.Fatalf("remove pdf: %v", err)
	}
}

func TestRemoveUnknownID(t *testing.T) {
	svc, _ := newTestService(t, &fakeThumbnailer{}, &fakeExtractor{})
	if err := svc.Remove("file_000000000000"); !errors.Is(err, ErrAttachmentNotFound) {
		t.Fatalf("expected ErrAttachmentNotFound, got %v", err)
	}
}
