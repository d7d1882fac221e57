package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/FahmidKDAU/kyo-document-control/internal/catalog"
	"github.com/FahmidKDAU/kyo-document-control/tests/integration/testkit"
)

const fixture = `
documents:
  - id: "1"
    name: safety.pdf
    data:
      name: Safety Policy
      type: Policy
      category: [HR]
      functionsubfn: [Operations]
      releasedate: "2023-01-10"
  - id: "2"
    name: expense.docx
    data:
      name: Expense Form
      type: Form
      category: [HR, Finance]
      releasedate: "2023-05-01"
  - id: "3"
    name: leave.pdf
    data:
      name: Leave Procedure
      type: Procedure
      category: [HR]
      releasedate: "2021-03-15"
doctypes:
  - {id: t1, name: Policy}
  - {id: t2, name: Procedure}
  - {id: t3, name: Form}
filterdata:
  - name: category
  - name: functionsubfn
contents:
  "1": JVBERi0x
`

// startServer runs the full application against a fixture backend and
// returns its base URL.
func startServer(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docs.yaml")
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	env := testkit.NewTestEnv(&testkit.ServerService{
		Flags: testkit.NewTestFlags(t, &testkit.FlagOptions{Host: "127.0.0.1", BackendFile: path}),
	})
	props, err := env.Start()
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() {
		if err := env.Stop(); err != nil {
			t.Errorf("Failed to stop server: %v", err)
		}
	})

	return props["base_url"].(string)
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("Failed to decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func rowIDs(listing catalog.Listing) []string {
	ids := make([]string, len(listing.Documents))
	for i, row := range listing.Documents {
		ids[i] = row.ID
	}
	return ids
}

// ========================================
// Browse Flow Tests
// ========================================

func TestBrowse_PoliciesAndProceduresExcludesForms(t *testing.T) {
	baseURL := startServer(t)

	var listing catalog.Listing
	if code := getJSON(t, baseURL+"/documents/policies-and-procedures", &listing); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}

	ids := strings.Join(rowIDs(listing), ",")
	if ids != "3,1" {
		t.Errorf("Expected procedure and policy sorted by name, got %s", ids)
	}
	if listing.Category.Title != "Policies & Procedures" {
		t.Errorf("Unexpected title: %q", listing.Category.Title)
	}
}

func TestBrowse_ListToDocumentAndBack(t *testing.T) {
	baseURL := startServer(t)

	var listing catalog.Listing
	getJSON(t, baseURL+"/documents/form?filterCategory=HR,Finance", &listing)
	if len(listing.Documents) != 1 {
		t.Fatalf("Expected 1 form, got %d", len(listing.Documents))
	}

	href := listing.Documents[0].Href
	if href != "/documents/Form/2?filterCategory=HR,Finance&fromCategory=form" {
		t.Fatalf("Unexpected row link: %s", href)
	}

	var view struct {
		BackPath       string `json:"backPath"`
		DownloadFormat string `json:"downloadFormat"`
	}
	if code := getJSON(t, baseURL+href, &view); code != http.StatusOK {
		t.Fatalf("Expected 200 for document view, got %d", code)
	}
	if view.BackPath != "/documents/form?filterCategory=HR,Finance" {
		t.Errorf("Unexpected back path: %s", view.BackPath)
	}
	if view.DownloadFormat != "PDF" {
		t.Errorf("Expected PDF download, got %q", view.DownloadFormat)
	}

	var back catalog.Listing
	getJSON(t, baseURL+view.BackPath, &back)
	if strings.Join(rowIDs(back), ",") != "2" {
		t.Errorf("Expected back link to restore the same list, got %v", rowIDs(back))
	}
}

func TestBrowse_SortToggle(t *testing.T) {
	baseURL := startServer(t)

	var asc, desc catalog.Listing
	getJSON(t, baseURL+"/documents?sort=releasedate&order=asc", &asc)
	getJSON(t, baseURL+"/documents?sort=releasedate&order=desc", &desc)

	if got := strings.Join(rowIDs(asc), ","); got != "3,1,2" {
		t.Errorf("Expected ascending release order 3,1,2, got %s", got)
	}
	if got := strings.Join(rowIDs(desc), ","); got != "2,1,3" {
		t.Errorf("Expected descending release order 2,1,3, got %s", got)
	}
}

func TestBrowse_ContentAndMetrics(t *testing.T) {
	baseURL := startServer(t)

	resp, err := http.Get(baseURL + "/documents/Policy/1/content")
	if err != nil {
		t.Fatalf("GET content failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "%PDF-1" {
		t.Errorf("Unexpected content: %q", body)
	}

	// Second fetch is served from the content cache.
	resp, err = http.Get(baseURL + "/documents/Policy/1/content")
	if err != nil {
		t.Fatalf("GET content failed: %v", err)
	}
	_ = resp.Body.Close()

	resp, err = http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	metrics, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	for _, want := range []string{"kyo_docs_documents_loaded 3", "kyo_docs_content_cache_hits_total 1"} {
		if !strings.Contains(string(metrics), want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}

// ========================================
// MCP over SSE Tests
// ========================================

func TestMCP_ToolsOverSSE(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.SSEClientTransport{Endpoint: baseURL + "/sse"}, nil)
	if err != nil {
		t.Fatalf("Failed to connect over SSE: %v", err)
	}
	defer func() { _ = session.Close() }()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_documents",
		Arguments: map[string]any{"query": "leave"},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %s", extractTextContent(result))
	}
	if !strings.Contains(extractTextContent(result), "Leave Procedure") {
		t.Errorf("Expected search hit, got: %s", extractTextContent(result))
	}
}

// extractTextContent extracts text from MCP result
func extractTextContent(result *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
