package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/devlarabar/fitnotes-v2/internal"
)

// setRecord is the wide-row JSON shape a set is stored as.
type setRecord struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	Date       string `json:"date"`
	ExerciseID int64  `json:"exercise"`
	CategoryID int64  `json:"category"`
	internal.SetFields
	Comment string `json:"comment,omitempty"`
	IsPR    bool   `json:"is_pr"`
}

func toRecord(s *internal.WorkoutSet) *setRecord {
	return &setRecord{
		ID:         s.ID,
		OwnerID:    s.OwnerID,
		Date:       s.Date,
		ExerciseID: s.ExerciseID,
		CategoryID: s.CategoryID,
		SetFields:  internal.FlattenMeasurement(s.Measurement),
		Comment:    s.Comment,
		IsPR:       s.IsPersonalRecord,
	}
}

func (r *setRecord) toSet() internal.WorkoutSet {
	return internal.WorkoutSet{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		Date:             r.Date,
		ExerciseID:       r.ExerciseID,
		CategoryID:       r.CategoryID,
		Measurement:      r.SetFields.Measurement(),
		Comment:          r.Comment,
		IsPersonalRecord: r.IsPR,
	}
}

type catalogFile struct {
	Exercises     []internal.Exercise `json:"exercises"`
	Categories    []internal.Category `json:"categories"`
	WeightUnits   []internal.Unit     `json:"weight_units"`
	DistanceUnits []internal.Unit     `json:"distance_units"`
}

// FileGateway persists sets and day comments as JSON files. Writes are
// debounced through save workers; the catalog file is read-only seed
// data.
type FileGateway struct {
	mu         sync.RWMutex
	sets       map[int64]*setRecord
	ownerIndex map[int64][]*setRecord // owner -> records, date desc then id desc
	comments   map[int64]*internal.DayComment
	catalog    catalogFile
	nextID     int64

	setsFile     string
	commentsFile string

	saveSetsChan     chan struct{}
	saveCommentsChan chan struct{}
	shutdownChan     chan struct{}
	saveDelay        time.Duration
	logger           internal.Logger
}

func NewFileGateway(setsFile, commentsFile, catalogPath string, logger internal.Logger) (*FileGateway, error) {
	g := &FileGateway{
		sets:             make(map[int64]*setRecord),
		ownerIndex:       make(map[int64][]*setRecord),
		comments:         make(map[int64]*internal.DayComment),
		nextID:           1,
		setsFile:         setsFile,
		commentsFile:     commentsFile,
		saveSetsChan:     make(chan struct{}, 1),
		saveCommentsChan: make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}

	if err := g.loadSets(); err != nil {
		logger.Errorf("gateway: failed to load sets: %v", err)
		return nil, err
	}
	if err := g.loadComments(); err != nil {
		logger.Errorf("gateway: failed to load day comments: %v", err)
		return nil, err
	}
	if err := g.loadCatalog(catalogPath); err != nil {
		logger.Errorf("gateway: failed to load catalog: %v", err)
		return nil, err
	}

	go g.saveWorker(g.saveSetsChan, g.saveSets, "sets")
	go g.saveWorker(g.saveCommentsChan, g.saveComments, "day comments")

	return g, nil
}

func (g *FileGateway) loadSets() error {
	var records []*setRecord
	if err := readJSONFile(g.setsFile, &records); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range records {
		g.sets[r.ID] = r
		g.ownerIndex[r.OwnerID] = append(g.ownerIndex[r.OwnerID], r)
		if r.ID >= g.nextID {
			g.nextID = r.ID + 1
		}
	}
	for owner := range g.ownerIndex {
		sortOwnerIndex(g.ownerIndex[owner])
	}
	return nil
}

func (g *FileGateway) loadComments() error {
	var comments []*internal.DayComment
	if err := readJSONFile(g.commentsFile, &comments); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range comments {
		g.comments[c.ID] = c
		if c.ID >= g.nextID {
			g.nextID = c.ID + 1
		}
	}
	return nil
}

func (g *FileGateway) loadCatalog(path string) error {
	return readJSONFile(path, &g.catalog)
}

func readJSONFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}
	return os.Rename(tempFile, filePath)
}

func sortOwnerIndex(records []*setRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].ID > records[j].ID
	})
}

func (g *FileGateway) saveSets() error {
	g.mu.RLock()
	records := make([]*setRecord, 0, len(g.sets))
	for _, r := range g.sets {
		records = append(records, r)
	}
	g.mu.RUnlock()
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return atomicWriteFileJSON(g.setsFile, records)
}

func (g *FileGateway) saveComments() error {
	g.mu.RLock()
	comments := make([]*internal.DayComment, 0, len(g.comments))
	for _, c := range g.comments {
		comments = append(comments, c)
	}
	g.mu.RUnlock()
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return atomicWriteFileJSON(g.commentsFile, comments)
}

func (g *FileGateway) saveWorker(trigger chan struct{}, save func() error, what string) {
	timer := time.NewTimer(g.saveDelay)
	defer timer.Stop()
	for {
		select {
		case <-trigger:
			timer.Reset(g.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				g.logger.Errorf("gateway: error saving %s: %v", what, err)
			}
		case <-g.shutdownChan:
			return
		}
	}
}

func (g *FileGateway) markDirty(trigger chan struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

func (g *FileGateway) Close() error {
	close(g.shutdownChan)
	if err := g.saveSets(); err != nil {
		return err
	}
	return g.saveComments()
}

// --- SetRepository ---

func (g *FileGateway) CreateSet(ctx context.Context, set *internal.WorkoutSet) (*internal.WorkoutSet, error) {
	g.mu.Lock()
	r := toRecord(set)
	r.ID = g.nextID
	g.nextID++
	g.sets[r.ID] = r
	g.ownerIndex[r.OwnerID] = append(g.ownerIndex[r.OwnerID], r)
	sortOwnerIndex(g.ownerIndex[r.OwnerID])
	persisted := r.toSet()
	g.mu.Unlock()

	g.markDirty(g.saveSetsChan)
	return &persisted, nil
}

func (g *FileGateway) UpdateSet(ctx context.Context, id int64, patch internal.SetPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.sets[id]
	if !ok {
		return errors.New("gateway: set not found")
	}
	if patch.Measurement != nil {
		r.SetFields = internal.FlattenMeasurement(patch.Measurement)
	}
	if patch.Comment != nil {
		r.Comment = *patch.Comment
	}
	if patch.Date != nil {
		r.Date = *patch.Date
		sortOwnerIndex(g.ownerIndex[r.OwnerID])
	}
	g.markDirty(g.saveSetsChan)
	return nil
}

func (g *FileGateway) DeleteSet(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.sets[id]
	if !ok {
		return errors.New("gateway: set not found")
	}
	delete(g.sets, id)
	idx := g.ownerIndex[r.OwnerID]
	for i, rec := range idx {
		if rec.ID == id {
			g.ownerIndex[r.OwnerID] = append(idx[:i], idx[i+1:]...)
			break
		}
	}
	g.markDirty(g.saveSetsChan)
	return nil
}

func (g *FileGateway) SetsByExercise(ctx context.Context, exerciseID, ownerID int64, offset, limit int) ([]internal.WorkoutSet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var matched []*setRecord
	for _, r := range g.ownerIndex[ownerID] {
		if r.ExerciseID == exerciseID {
			matched = append(matched, r)
		}
	}
	// Offset pagination needs a stable order.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if offset >= len(matched) {
		return []internal.WorkoutSet{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]internal.WorkoutSet, 0, end-offset)
	for _, r := range matched[offset:end] {
		page = append(page, r.toSet())
	}
	return page, nil
}

func (g *FileGateway) SetsByOwner(ctx context.Context, ownerID int64) ([]internal.WorkoutSet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx := g.ownerIndex[ownerID]
	sets := make([]internal.WorkoutSet, 0, len(idx))
	for _, r := range idx {
		sets = append(sets, r.toSet())
	}
	return sets, nil
}

// --- CommentRepository ---

func (g *FileGateway) CreateComment(ctx context.Context, c *internal.DayComment) (*internal.DayComment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, existing := range g.comments {
		if existing.OwnerID == c.OwnerID && existing.Date == c.Date {
			return nil, errors.New("gateway: day comment already exists for date")
		}
	}
	persisted := *c
	persisted.ID = g.nextID
	g.nextID++
	g.comments[persisted.ID] = &persisted
	g.markDirty(g.saveCommentsChan)
	out := persisted
	return &out, nil
}

func (g *FileGateway) UpdateComment(ctx context.Context, id int64, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.comments[id]
	if !ok {
		return errors.New("gateway: day comment not found")
	}
	c.Text = text
	g.markDirty(g.saveCommentsChan)
	return nil
}

func (g *FileGateway) DeleteComment(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.comments[id]; !ok {
		return errors.New("gateway: day comment not found")
	}
	delete(g.comments, id)
	g.markDirty(g.saveCommentsChan)
	return nil
}

func (g *FileGateway) CommentsByOwner(ctx context.Context, ownerID int64) ([]internal.DayComment, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []internal.DayComment
	for _, c := range g.comments {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// --- CatalogRepository ---

func (g *FileGateway) Exercises(ctx context.Context) ([]internal.Exercise, error) {
	return append([]internal.Exercise(nil), g.catalog.Exercises...), nil
}

func (g *FileGateway) Categories(ctx context.Context) ([]internal.Category, error) {
	return append([]internal.Category(nil), g.catalog.Categories...), nil
}

func (g *FileGateway) WeightUnits(ctx context.Context) ([]internal.Unit, error) {
	return append([]internal.Unit(nil), g.catalog.WeightUnits...), nil
}

func (g *FileGateway) DistanceUnits(ctx context.Context) ([]internal.Unit, error) {
	return append([]internal.Unit(nil), g.catalog.DistanceUnits...), nil
}

// --- Compile-time assertions ---
var _ SetRepository = (*FileGateway)(nil)
var _ CommentRepository = (*FileGateway)(nil)
var _ CatalogRepository = (*FileGateway)(nil)
