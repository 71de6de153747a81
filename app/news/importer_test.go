package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luisjesusbernal/Geek-News/app/database"
)

type memoryArticleRepo struct {
	articles []database.Article
	nextID   int64
}

func newMemoryArticleRepo() *memoryArticleRepo {
	return &memoryArticleRepo{nextID: 1}
}

func (r *memoryArticleRepo) Create(a database.Article) (int64, error) {
	a.ID = r.nextID
	r.nextID++
	r.articles = append(r.articles, a)
	return a.ID, nil
}

func (r *memoryArticleRepo) ListPublished(filter database.ArticleFilter) ([]database.Article, error) {
	var out []database.Article
	for _, a := range r.articles {
		if !a.Published {
			continue
		}
		if filter.Section != "" && a.Section != filter.Section {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryArticleRepo) ListAll(limit int) ([]database.Article, error) {
	return r.articles, nil
}

func (r *memoryArticleRepo) GetPublished(id int64) (*database.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID == id && r.articles[i].Published {
			return &r.articles[i], nil
		}
	}
	return nil, nil
}

func (r *memoryArticleRepo) GetByTitle(section, title string) (*database.Article, error) {
	for i := range r.articles {
		if r.articles[i].Section == section && r.articles[i].Title == title {
			return &r.articles[i], nil
		}
	}
	return nil, nil
}

func (r *memoryArticleRepo) Delete(id int64) (bool, error) {
	for i := range r.articles {
		if r.articles[i].ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryArticleRepo) GetCount() (int, error) {
	return len(r.articles), nil
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Sample Feed</title>
<link>https://example.com</link>
<item>
<title>First Story</title>
<link>https://example.com/first</link>
<description>A short description of the first story.</description>
</item>
<item>
<title>Second Story</title>
<link>https://example.com/second</link>
<description>Second story description.</description>
<enclosure url="https://example.com/second.jpg" type="image/jpeg" length="1000"/>
</item>
<item>
<title></title>
<link>https://example.com/untitled</link>
</item>
</channel>
</rss>`

func TestImporterRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	repo := newMemoryArticleRepo()
	importer := NewImporter(repo, server.Client(), "Geek News Test/1.0")

	result, err := importer.Run(context.Background(), ImportRequest{
		FeedURL:  server.URL,
		Section:  "starwars",
		Publish:  true,
		AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported items, got %d", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped item (untitled), got %d", result.Skipped)
	}

	first, err := repo.GetByTitle("starwars", "First Story")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if first == nil {
		t.Fatal("Expected first story to be stored")
	}
	if !first.Published {
		t.Error("Expected imported article to be published per request")
	}
	if first.AuthorID != 1 {
		t.Errorf("Expected author id 1, got %d", first.AuthorID)
	}
	if first.Excerpt != "A short description of the first story." {
		t.Errorf("Unexpected excerpt: %q", first.Excerpt)
	}

	second, _ := repo.GetByTitle("starwars", "Second Story")
	if second == nil {
		t.Fatal("Expected second story to be stored")
	}
	if second.ImageURL != "https://example.com/second.jpg" {
		t.Errorf("Expected image from enclosure, got %q", second.ImageURL)
	}
}

func TestImporterSkipsExistingTitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	repo := newMemoryArticleRepo()
	importer := NewImporter(repo, server.Client(), "Geek News Test/1.0")

	req := ImportRequest{FeedURL: server.URL, Section: "lotr"}

	if _, err := importer.Run(context.Background(), req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	result, err := importer.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Imported != 0 {
		t.Errorf("Expected no new imports on second run, got %d", result.Imported)
	}
	if result.Skipped != 3 {
		t.Errorf("Expected all 3 items skipped on second run, got %d", result.Skipped)
	}
}

func TestImporterHonorsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	repo := newMemoryArticleRepo()
	importer := NewImporter(repo, server.Client(), "Geek News Test/1.0")

	result, err := importer.Run(context.Background(), ImportRequest{
		FeedURL: server.URL,
		Section: "medieval",
		Limit:   1,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("Expected limit to cap imports at 1, got %d", result.Imported)
	}
}

func TestImporterExtractContent(t *testing.T) {
	articleHTML := `
	<!DOCTYPE html>
	<html>
	<head><title>Linked Page</title></head>
	<body>
		<article>
			<h1>Linked Page</h1>
			<p>Readable body text fetched from the linked page rather than the feed. It is long enough for the readability pass to pick it up as the main content of the document.</p>
			<p>A second paragraph keeps the extracted region comfortably above the size heuristics used when scoring candidate nodes.</p>
			<p>And a third paragraph closes out the page with more plain prose for good measure, ensuring stable extraction.</p>
		</article>
	</body>
	</html>
	`

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/article" {
			w.Write([]byte(articleHTML))
			return
		}
		feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Linking Feed</title>
<item>
<title>Linked Story</title>
<link>` + server.URL + `/article</link>
<description>Feed-side summary.</description>
</item>
</channel>
</rss>`
		w.Write([]byte(feed))
	}))
	defer server.Close()

	repo := newMemoryArticleRepo()
	importer := NewImporter(repo, server.Client(), "Geek News Test/1.0")

	result, err := importer.Run(context.Background(), ImportRequest{
		FeedURL:        server.URL,
		Section:        "pokemon",
		ExtractContent: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("Expected 1 imported item, got %d", result.Imported)
	}

	stored, _ := repo.GetByTitle("pokemon", "Linked Story")
	if stored == nil {
		t.Fatal("Expected story to be stored")
	}
	if !strings.Contains(stored.Content, "Readable body text fetched from the linked page") {
		t.Errorf("Expected extracted page content, got: %q", stored.Content)
	}
	if strings.Contains(stored.Content, "Feed-side summary") {
		t.Error("Expected feed description to be replaced by extracted content")
	}
	// The feed description still wins as the excerpt
	if stored.Excerpt != "Feed-side summary." {
		t.Errorf("Expected feed excerpt kept, got %q", stored.Excerpt)
	}
}

func TestImporterFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := newMemoryArticleRepo()
	importer := NewImporter(repo, server.Client(), "Geek News Test/1.0")

	_, err := importer.Run(context.Background(), ImportRequest{FeedURL: server.URL, Section: "lotr"})
	if err == nil {
		t.Fatal("Expected an error for a failing upstream")
	}
	if !strings.Contains(err.Error(), "unexpected status") {
		t.Errorf("Expected status error, got: %v", err)
	}
}

func TestMakeExcerpt(t *testing.T) {
	if got := makeExcerpt("  short text  "); got != "short text" {
		t.Errorf("Expected trimmed text, got %q", got)
	}

	long := strings.Repeat("palabra ", 60)
	got := makeExcerpt(long)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected truncated excerpt to end with ellipsis, got %q", got)
	}
	if len([]rune(got)) > excerptMaxRunes+1 {
		t.Errorf("Expected excerpt capped at %d runes, got %d", excerptMaxRunes, len([]rune(got)))
	}
}
