package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"custody-core/internal/recovery"
	"custody-core/internal/wallet"
	"custody-core/pkg/errno"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recoveryTestContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var resp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return resp.Code, resp.Msg
}

func TestSplitRejectsPartialThreshold(t *testing.T) {
	svc := wallet.NewService(wallet.Deps{Recovery: recovery.NewXORStrategy()})
	h := NewRecoveryHandler(svc)

	// XOR 策略不支持 2-of-3，错误码保留，文案是面向用户的提示
	c, w := recoveryTestContext(t, `{"secret":"top secret","total":3,"threshold":2}`)
	h.Split(c)

	code, msg := decodeEnvelope(t, w)
	assert.Equal(t, errno.ErrSplitFailed.Code, code)
	assert.Equal(t, "invalid total/threshold combination", msg)
}

func TestReconstructSanitizesError(t *testing.T) {
	svc := wallet.NewService(wallet.Deps{Recovery: recovery.NewXORStrategy()})
	h := NewRecoveryHandler(svc)

	shares, err := svc.GenerateShares("top secret", 3, 3)
	if err != nil {
		t.Fatalf("拆分失败: %v", err)
	}

	// 缺一份分片无法还原，对外不暴露内部错误细节
	partial, _ := json.Marshal(shares[:2])
	c, w := recoveryTestContext(t, `{"shares":`+string(partial)+`}`)
	h.Reconstruct(c)

	code, msg := decodeEnvelope(t, w)
	assert.Equal(t, errno.ErrReconstructFailed.Code, code)
	assert.Equal(t, "invalid or incomplete share set", msg)
}

func TestSplitRoundTripOverHTTP(t *testing.T) {
	svc := wallet.NewService(wallet.Deps{Recovery: recovery.NewXORStrategy()})
	h := NewRecoveryHandler(svc)

	c, w := recoveryTestContext(t, `{"secret":"my secret","total":3,"threshold":3}`)
	h.Split(c)

	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, errno.OK.Code, code)
}
