package api

import (
	"github.com/seyitm/baby-ai/internal"
	"github.com/seyitm/baby-ai/internal/config"
	"github.com/seyitm/baby-ai/internal/service"
	"github.com/seyitm/baby-ai/internal/storage"
)

// App is what handlers need from the composed application.
type App interface {
	Logger() internal.Logger
	Config() *config.Config
	Chat() *service.ChatService
	Records() *storage.CachedRecordAccessor
}
