package httpresp

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestListNeverNull(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List[string](c, nil)

	if got := w.Body.String(); got != `{"data":[],"total":0}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestPage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Page(c, []int{7, 8}, 12, 2, 2)

	if got := w.Body.String(); got != `{"data":[7,8],"total":12,"page":2,"limit":2}` {
		t.Fatalf("unexpected body %s", got)
	}
}
