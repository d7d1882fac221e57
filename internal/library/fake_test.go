package library

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FahmidKDAU/kyo-document-control/internal/backend"
	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// fakeClient is an in-memory backend with switchable failures.
type fakeClient struct {
	mu         sync.Mutex
	docs       []domain.Document
	docTypes   []domain.DocType
	defs       []domain.FacetDefinition
	docsErr    error
	typesErr   error
	defsErr    error
	byIDErr    error
	docFetches atomic.Int32
}

func newFakeClient() *fakeClient {
	yes := true
	return &fakeClient{
		docs: []domain.Document{
			{ID: "1", Name: "safety.pdf", Data: domain.DocumentData{
				Name: "Safety Policy", Type: "Policy", Category: []string{"HR"}, FunctionSubFn: []string{"Ops"}, ReleaseDate: "2023-01-10",
			}},
			{ID: "2", Name: "expense.docx", Data: domain.DocumentData{
				Name: "Expense Form", Type: "Form", Category: []string{"Finance"}, FunctionSubFn: []string{"Ops"}, ReleaseDate: "2023-05-01",
				DownloadOriginalFileType: &yes,
			}},
			{ID: "3", Name: "lathe.pdf", Data: domain.DocumentData{
				Name: "Lathe Setup", Type: "Work Instruction", Category: []string{"Safety", "Workshop"}, ReleaseDate: "2022-07-01",
			}},
		},
		docTypes: []domain.DocType{
			{ID: "t1", Name: "Policy"},
			{ID: "t2", Name: "Procedure"},
			{ID: "t3", Name: "Form"},
			{ID: "t4", Name: "Work Instruction"},
		},
		defs: []domain.FacetDefinition{
			{Name: "category"},
			{Name: "functionsubfn"},
		},
	}
}

func (f *fakeClient) set(fn func(f *fakeClient)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeClient) FetchDocuments(_ context.Context) ([]domain.Document, error) {
	f.docFetches.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docsErr != nil {
		return nil, f.docsErr
	}
	return f.docs, nil
}

func (f *fakeClient) FetchDocTypes(_ context.Context) ([]domain.DocType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	return f.docTypes, nil
}

func (f *fakeClient) FetchFacetDefinitions(_ context.Context) ([]domain.FacetDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.defsErr != nil {
		return nil, f.defsErr
	}
	return f.defs, nil
}

func (f *fakeClient) FetchDocumentContent(_ context.Context, id string) ([]byte, error) {
	if id == "1" {
		return []byte("%PDF-1"), nil
	}
	return nil, fmt.Errorf("content %s: %w", id, backend.ErrNotFound)
}

func (f *fakeClient) FetchDocumentByID(_ context.Context, id string) (domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byIDErr != nil {
		return domain.Document{}, f.byIDErr
	}
	for _, doc := range f.docs {
		if doc.ID == id {
			doc.Name = "fresh-" + doc.Name
			return doc, nil
		}
	}
	return domain.Document{}, backend.ErrNotFound
}

func (f *fakeClient) FetchDocumentDownload(_ context.Context, id, format string) (*domain.Blob, error) {
	return &domain.Blob{ContentType: "application/pdf", Data: []byte(id + ":" + format)}, nil
}

func (f *fakeClient) SearchContent(_ context.Context, term string) (json.RawMessage, error) {
	return json.Marshal(map[string]string{"term": term})
}

// recordingObserver captures load events.
type recordingObserver struct {
	mu       sync.Mutex
	loads    []int
	lastLoad time.Time
	failures map[string]int
	tools    map[string]int
}

func (o *recordingObserver) ObserveLoad(documents int, at time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads = append(o.loads, documents)
	o.lastLoad = at
}

func (o *recordingObserver) FetchFailed(resource string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.failures == nil {
		o.failures = make(map[string]int)
	}
	o.failures[resource]++
}

func (o *recordingObserver) ToolCalled(tool string, failed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tools == nil {
		o.tools = make(map[string]int)
	}
	if failed {
		tool += ":error"
	}
	o.tools[tool]++
}

// purgingClient counts content cache purges.
type purgingClient struct {
	*fakeClient
	purges int
}

func (p *purgingClient) Purge() {
	p.purges++
}
