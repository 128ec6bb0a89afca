package testtool

import (
	"net/http"
	_ "net/http/pprof" // 匯入後會自動註冊 pprof endpoint

	"presence_relay_service/pkg/config"
	"presence_relay_service/pkg/logger"

	"go.uber.org/zap"
)

// PprofAddr pprof 只聽本機
const PprofAddr = "127.0.0.1:6060"

// StartPprof 啟動 pprof 監控伺服器, production 環境不啟動
func StartPprof(enabled bool, addr string) bool {
	if !enabled {
		return false
	}
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return false
	}

	go func() {
		logger.Log.Info("Starting pprof server", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Log.Errorf("pprof server failed: ", err)
		}
	}()
	return true
}

// 常用:
// curl http://127.0.0.1:6060/debug/pprof/
// go tool pprof http://127.0.0.1:6060/debug/pprof/profile?seconds=30
// go tool pprof http://127.0.0.1:6060/debug/pprof/heap
// go tool pprof http://127.0.0.1:6060/debug/pprof/goroutine
