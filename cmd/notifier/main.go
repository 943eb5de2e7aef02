package main

import (
	"github.com/ilindan-dev/fanout-notifier/internal/app"
	"go.uber.org/fx"
)

// main sends the demo notification on every configured channel and exits.
func main() {
	fx.New(app.NotifierModule, fx.NopLogger).Run()
}
