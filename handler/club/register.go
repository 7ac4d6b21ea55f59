package club

import "github.com/cepbuch/temptok/handler"

// RegisterHandlers wires the slash command handlers into the router.
func (h *Handlers) RegisterHandlers() {
	handler.AddCommandHandler("start", h.StartCommandHandler)
	handler.AddCommandHandler("stats", h.StatsCommandHandler)
	handler.AddCommandHandler("watch", h.WatchCommandHandler)
	handler.AddCommandHandler("rebuild", h.RebuildCommandHandler)
	handler.AddCommandHandler("delreply", h.DelReplyCommandHandler)
}
