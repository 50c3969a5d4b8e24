package atomcss

// warnOnce logs a warning through the configured logger, at most once per
// unique message for the lifetime of the current config.
func (g *Generator) warnOnce(msg string) {
	g.mu.Lock()
	if _, ok := g.warned[msg]; ok {
		g.mu.Unlock()
		return
	}
	g.warned[msg] = struct{}{}
	g.mu.Unlock()

	g.config.Logger.Sugar().Warn(msg)
}
