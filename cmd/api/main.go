package main

import (
	"go.uber.org/fx"

	"github.com/nhoyhub/orderhub/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
