package bus_web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tarediiran-industries.com/bus-eta-services/internal/api"
	"tarediiran-industries.com/bus-eta-services/internal/mockapi"
	"tarediiran-industries.com/bus-eta-services/internal/plates"
)

type testEnv struct {
	web      *httptest.Server
	server   *BusWebServer
	registry *prometheus.Registry
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, withPlates bool) *testEnv {
	t.Helper()

	mock := httptest.NewServer(mockapi.NewHandler(mockapi.DefaultFixtures(), quietLogger()))
	t.Cleanup(mock.Close)

	client, err := api.NewClient(mock.URL, api.WithLogger(quietLogger()), api.WithTimeout(5*time.Second))
	if err != nil {
		t.Fatal(err)
	}

	var loader *plates.Loader
	if withPlates {
		loader = plates.NewLoader(mock.URL+"/plates.json", plates.FormatJSON)
		loader.Logger = quietLogger()
	}

	registry := prometheus.NewRegistry()
	server, err := NewBusWebServer(ServerOptions{
		Backend:    client,
		Plates:     loader,
		SessionTTL: time.Minute,
		Registry:   registry,
		Logger:     quietLogger(),
		Mock:       mockapi.NewHandler(mockapi.DefaultFixtures(), quietLogger()),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(server.Close)

	web := httptest.NewServer(server.Handler())
	t.Cleanup(web.Close)

	return &testEnv{web: web, server: server, registry: registry}
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, browser *http.Client, target string) string {
	t.Helper()
	resp, err := browser.Get(target)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s = %d: %s", target, resp.StatusCode, body)
	}
	return string(body)
}

// post submits a form and follows the 303 back to /eta.
func post(t *testing.T, browser *http.Client, target string, form url.Values) string {
	t.Helper()
	resp, err := browser.PostForm(target, form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || resp.Request.URL.Path != "/eta" {
		t.Fatalf("POST %s landed on %s with %d", target, resp.Request.URL.Path, resp.StatusCode)
	}
	return string(body)
}

func TestSearchButtonFollowsKeyword(t *testing.T) {
	env := newTestEnv(t, false)
	browser := newBrowser(t)

	page := get(t, browser, env.web.URL+"/eta")
	if !strings.Contains(page, `id="search-route-button" type="submit" disabled`) {
		t.Errorf("search button should start disabled:\n%s", page)
	}

	page = post(t, browser, env.web.URL+"/eta/search", url.Values{"keyword": {"307"}})
	if strings.Contains(page, `id="search-route-button" type="submit" disabled`) {
		t.Errorf("search button should be enabled with a keyword:\n%s", page)
	}
}

var optionValue = regexp.MustCompile(`<option value="([0-9]+\.[0-9]+)"`)

func TestEndToEnd307(t *testing.T) {
	env := newTestEnv(t, false)
	browser := newBrowser(t)
	base := env.web.URL

	page := get(t, browser, base+"/eta")
	if !strings.Contains(page, "-- 請先搜尋路線 --") || !strings.Contains(page, `id="get-eta-button" type="submit" disabled`) {
		t.Fatalf("initial page unexpected:\n%s", page)
	}

	page = post(t, browser, base+"/eta/search", url.Values{"keyword": {"307"}})
	matches := optionValue.FindAllStringSubmatch(page, -1)
	if len(matches) != 2 || !strings.Contains(page, "307 (去程)") {
		t.Fatalf("route options missing:\n%s", page)
	}

	page = post(t, browser, base+"/eta/route", url.Values{"route": {matches[0][1]}})
	if !strings.Contains(page, "ABC-123 (目前位置: 捷運西門站)") || !strings.Contains(page, "-- 請選擇公車 --") {
		t.Fatalf("bus options missing:\n%s", page)
	}

	page = post(t, browser, base+"/eta/bus", url.Values{"bus": {"ABC-123"}})
	if strings.Contains(page, `id="get-eta-button" type="submit" disabled`) {
		t.Fatal("eta button still disabled after choosing a bus")
	}

	post(t, browser, base+"/eta/fetch", nil)
	partial := get(t, browser, base+"/eta/partial")
	if got := strings.Count(partial, "<li>"); got != 1 {
		t.Errorf("lines = %d, want 1:\n%s", got, partial)
	}
	if !strings.Contains(partial, "<li>停靠站 3: 仁愛路口 - 進站中</li>") {
		t.Errorf("eta line missing:\n%s", partial)
	}
	if !strings.Contains(partial, "公車 ABC-123 (307 - 去程)") {
		t.Errorf("bus details missing:\n%s", partial)
	}
}

func TestBlankKeywordShowsInfo(t *testing.T) {
	env := newTestEnv(t, false)
	browser := newBrowser(t)

	page := post(t, browser, env.web.URL+"/eta/search", url.Values{"keyword": {"   "}})
	if !strings.Contains(page, `<div class="messages info">請輸入路線關鍵字</div>`) {
		t.Errorf("info message missing:\n%s", page)
	}
}

func TestInboundHasNoBuses(t *testing.T) {
	env := newTestEnv(t, false)
	browser := newBrowser(t)

	page := post(t, browser, env.web.URL+"/eta/search", url.Values{"keyword": {"307"}})
	matches := optionValue.FindAllStringSubmatch(page, -1)
	page = post(t, browser, env.web.URL+"/eta/route", url.Values{"route": {matches[1][1]}})

	if !strings.Contains(page, "-- 無可用公車 --") || !strings.Contains(page, `class="messages info"`) {
		t.Errorf("no-bus state missing:\n%s", page)
	}
	if !strings.Contains(page, `name="bus" onchange="this.form.submit()" disabled`) {
		t.Errorf("bus select not disabled:\n%s", page)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t, false)
	first, second := newBrowser(t), newBrowser(t)

	post(t, first, env.web.URL+"/eta/search", url.Values{"keyword": {"307"}})
	page := get(t, second, env.web.URL+"/eta")
	if strings.Contains(page, "307 (去程)") {
		t.Error("second browser sees the first browser's routes")
	}

	expected := `
# HELP bus_eta_sessions_active Web sessions that have not expired
# TYPE bus_eta_sessions_active gauge
bus_eta_sessions_active 2
`
	if err := testutil.GatherAndCompare(env.registry, strings.NewReader(expected), "bus_eta_sessions_active"); err != nil {
		t.Error(err)
	}
}

func TestPlatesPage(t *testing.T) {
	env := newTestEnv(t, true)
	page := get(t, newBrowser(t), env.web.URL+"/plates")

	for _, plate := range []string{"ABC-123", "EAL-0031"} {
		if !strings.Contains(page, `<option value="`+plate+`">`+plate+`</option>`) {
			t.Errorf("plate %s missing:\n%s", plate, page)
		}
	}
	if strings.Contains(page, `value="-1"`) {
		t.Error("sentinel plate rendered")
	}
}

func TestPlatesPageWithoutSource(t *testing.T) {
	env := newTestEnv(t, false)
	page := get(t, newBrowser(t), env.web.URL+"/plates")
	if !strings.Contains(page, "無法讀取車牌資料: no plate source configured") || strings.Contains(page, "<select") {
		t.Errorf("page:\n%s", page)
	}
}

func TestHealthAndRedirect(t *testing.T) {
	env := newTestEnv(t, false)
	browser := newBrowser(t)

	if body := get(t, browser, env.web.URL+"/healthz"); !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("healthz = %s", body)
	}

	resp, err := browser.Get(env.web.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Request.URL.Path != "/eta" {
		t.Errorf("/ landed on %s", resp.Request.URL.Path)
	}
}

func TestMockMounted(t *testing.T) {
	env := newTestEnv(t, false)
	body := get(t, newBrowser(t), env.web.URL+"/mock/api/routes?keyword=307")
	if !strings.Contains(body, "TPE157462") {
		t.Errorf("mock routes = %s", body)
	}
}

func TestSelfURL(t *testing.T) {
	cases := map[string]string{
		":8080":          "http://127.0.0.1:8080",
		"0.0.0.0:9000":   "http://127.0.0.1:9000",
		"localhost:3000": "http://localhost:3000",
	}
	for listen, want := range cases {
		got, err := selfURL(listen)
		if err != nil || got != want {
			t.Errorf("selfURL(%q) = %q, %v; want %q", listen, got, err, want)
		}
	}
	if _, err := selfURL("8080"); err == nil {
		t.Error("selfURL accepted an address without a port")
	}
}
