package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/soundlane/ingest/cmd/ingest/models"
	"github.com/soundlane/ingest/cmd/ingest/repository"
	"github.com/soundlane/ingest/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory ArtifactStore. Upload failures can be
// injected per key; Delete of an absent key is a no-op, matching the
// real gateway.
type fakeStore struct {
	objects   map[string][]byte
	failKeys  map[string]error
	deleteErr error
	deletes   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:  make(map[string][]byte),
		failKeys: make(map[string]error),
	}
}

func (f *fakeStore) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if err := f.failKeys[key]; err != nil {
		return "", err
	}
	f.objects[key] = data
	return "https://storage.test/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	// An absent key is success, mirroring the gateway's mapping of the
	// backend's not-found to nil
	delete(f.objects, key)
	return nil
}

// fakeSongs is an in-memory SongStore enforcing the title uniqueness
// constraint the real table carries.
type fakeSongs struct {
	rows      map[uuid.UUID]*models.Song
	createErr error
}

func newFakeSongs() *fakeSongs {
	return &fakeSongs{rows: make(map[uuid.UUID]*models.Song)}
}

func (f *fakeSongs) Create(ctx context.Context, song *models.Song) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.rows {
		if existing.Title == song.Title {
			return repository.ErrDuplicateTitle
		}
	}
	copied := *song
	f.rows[song.ProcessingID] = &copied
	return nil
}

func (f *fakeSongs) GetByProcessingID(ctx context.Context, processingID uuid.UUID) (*models.Song, error) {
	song, ok := f.rows[processingID]
	if !ok {
		return nil, repository.ErrSongNotFound
	}
	copied := *song
	return &copied, nil
}

func (f *fakeSongs) FinalizeMedia(ctx context.Context, processingID uuid.UUID, songURL string) error {
	song, ok := f.rows[processingID]
	if !ok {
		return repository.ErrSongNotFound
	}
	song.SongURL = &songURL
	song.Processing = false
	return nil
}

var testTime = time.UnixMilli(1700000000000).UTC()

func newTestIngest(store *fakeStore, songs *fakeSongs) (*IngestService, uuid.UUID) {
	processingID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	svc := NewIngestService(store, songs, logger.New("error", "json"))
	svc.now = func() time.Time { return testTime }
	svc.newID = func() uuid.UUID { return processingID }
	return svc, processingID
}

func validInput() SubmitSongInput {
	return SubmitSongInput{
		Title:           "My Song!! (Remix)",
		Album:           "First Album",
		Language:        "en",
		DurationSeconds: 215,
		ArtistName:      "The Band",
		SubmittedBy:     "user-1",
		Song:            &FileUpload{Name: "upload.mp3", ContentType: "audio/mpeg", Data: []byte("audio-bytes")},
		Cover:           &FileUpload{Name: "cover.png", ContentType: "image/png", Data: []byte("image-bytes")},
	}
}

func TestCreateSong_Success(t *testing.T) {
	store := newFakeStore()
	songs := newFakeSongs()
	svc, processingID := newTestIngest(store, songs)

	receipt, err := svc.CreateSong(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, processingID, receipt.ProcessingID)

	audioKey := processingID.String() + "-my-song-remix.mp3"
	coverKey := "1700000000000-cover.png"
	assert.Contains(t, store.objects, audioKey)
	assert.Contains(t, store.objects, coverKey)
	assert.Equal(t, "https://storage.test/"+coverKey, receipt.CoverImageURL)
	assert.Empty(t, store.deletes)

	// The row is pending until the worker reports back
	song, err := songs.GetByProcessingID(context.Background(), processingID)
	require.NoError(t, err)
	assert.True(t, song.Processing)
	assert.Nil(t, song.SongURL)
	assert.Equal(t, "My Song!! (Remix)", song.Title)
	assert.Equal(t, "user-1", song.CreatedBy)
}

func TestCreateSong_MissingFields(t *testing.T) {
	mutations := map[string]func(*SubmitSongInput){
		"title":    func(in *SubmitSongInput) { in.Title = "" },
		"album":    func(in *SubmitSongInput) { in.Album = "" },
		"language": func(in *SubmitSongInput) { in.Language = "" },
		"artist":   func(in *SubmitSongInput) { in.ArtistName = "" },
		"song":     func(in *SubmitSongInput) { in.Song = nil },
		"cover":    func(in *SubmitSongInput) { in.Cover = &FileUpload{Name: "empty.png"} },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			songs := newFakeSongs()
			svc, _ := newTestIngest(store, songs)

			input := validInput()
			mutate(&input)

			_, err := svc.CreateSong(context.Background(), input)
			require.ErrorIs(t, err, ErrMissingInput)
			assert.Empty(t, store.objects, "nothing may be uploaded for an invalid submission")
			assert.Empty(t, songs.rows)
		})
	}
}

func TestCreateSong_CoverUploadFails(t *testing.T) {
	store := newFakeStore()
	store.failKeys["1700000000000-cover.png"] = errors.New("bucket unavailable")
	songs := newFakeSongs()
	svc, _ := newTestIngest(store, songs)

	_, err := svc.CreateSong(context.Background(), validInput())
	require.ErrorIs(t, err, ErrUploadFailed)

	// Nothing was written, so nothing needs cleaning up
	assert.Empty(t, songs.rows)
	assert.Empty(t, store.objects)
	assert.Empty(t, store.deletes)
}

func TestCreateSong_DuplicateTitle(t *testing.T) {
	store := newFakeStore()
	songs := newFakeSongs()
	svc, _ := newTestIngest(store, songs)

	existingID := uuid.New()
	songs.rows[existingID] = &models.Song{ProcessingID: existingID, Title: "My Song!! (Remix)"}

	_, err := svc.CreateSong(context.Background(), validInput())
	require.ErrorIs(t, err, repository.ErrDuplicateTitle)

	// The freshly uploaded cover was compensated away and the audio never went up
	coverKey := "1700000000000-cover.png"
	assert.Equal(t, []string{coverKey}, store.deletes)
	assert.Empty(t, store.objects)
	assert.Len(t, songs.rows, 1, "only the pre-existing row remains")
}

func TestCreateSong_AudioUploadFails(t *testing.T) {
	store := newFakeStore()
	songs := newFakeSongs()
	svc, processingID := newTestIngest(store, songs)

	audioKey := processingID.String() + "-my-song-remix.mp3"
	store.failKeys[audioKey] = errors.New("connection reset")

	_, err := svc.CreateSong(context.Background(), validInput())
	require.ErrorIs(t, err, ErrUploadFailed)

	// The cover was compensated; the row stays behind, still pending
	assert.Equal(t, []string{"1700000000000-cover.png"}, store.deletes)
	song, getErr := songs.GetByProcessingID(context.Background(), processingID)
	require.NoError(t, getErr)
	assert.True(t, song.Processing)
	assert.Nil(t, song.SongURL)
}

func TestCreateSong_CompensationFailureDoesNotMaskPrimaryError(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("delete forbidden")
	songs := newFakeSongs()
	svc, _ := newTestIngest(store, songs)

	existingID := uuid.New()
	songs.rows[existingID] = &models.Song{ProcessingID: existingID, Title: "My Song!! (Remix)"}

	_, err := svc.CreateSong(context.Background(), validInput())
	require.ErrorIs(t, err, repository.ErrDuplicateTitle)
	assert.NotErrorIs(t, err, ErrUploadFailed)
}

func TestCreateSong_CompensationRunsAfterContextCancel(t *testing.T) {
	store := newFakeStore()
	songs := newFakeSongs()
	svc, processingID := newTestIngest(store, songs)

	audioKey := processingID.String() + "-my-song-remix.mp3"
	store.failKeys[audioKey] = context.Canceled

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CreateSong(ctx, validInput())
	require.Error(t, err)
	assert.Equal(t, []string{"1700000000000-cover.png"}, store.deletes,
		"cover cleanup must still run when the request context is gone")
}

// Compensation may fire for an object that is already gone, for example
// when a cleanup is retried after a partial failure. The store contract
// makes that a no-op rather than an error, and deleting one key must
// never touch another.
func TestArtifactDelete_Idempotent(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("image-bytes"), "1700000000000-cover.png", "image/png")
	require.NoError(t, err)
	_, err = store.Upload(ctx, []byte("audio-bytes"), "abc123-other-song.mp3", "audio/mpeg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "1700000000000-cover.png"))
	require.NoError(t, store.Delete(ctx, "1700000000000-cover.png"))
	require.NoError(t, store.Delete(ctx, "never-written"))

	assert.NotContains(t, store.objects, "1700000000000-cover.png")
	assert.Contains(t, store.objects, "abc123-other-song.mp3", "unrelated objects must survive")
}
