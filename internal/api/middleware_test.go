package api

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestTimeoutMiddlewareAnswers408(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TimeoutMiddleware(50 * time.Millisecond))
	// The handler deliberately writes nothing: after the 408 the recorder
	// belongs to the test, and a late write would race it.
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(200 * time.Millisecond)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestTimeout {
		t.Fatalf("expected 408, got %d", w.Code)
	}
}

func TestTimeoutMiddlewareReleasesHandlerGoroutines(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TimeoutMiddleware(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(100 * time.Millisecond)
	})

	baseline := runtime.NumGoroutine()

	const requests = 20
	for i := 0; i < requests; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/slow", nil)
		r.ServeHTTP(w, req)
	}

	// Give the timed-out handlers time to finish their sleeps and exit.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= baseline+2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("handler goroutines leaked: baseline=%d now=%d", baseline, runtime.NumGoroutine())
}
