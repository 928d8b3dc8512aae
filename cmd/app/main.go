package main

import (
	"github.com/pdrhp/matchmovie/internal/app"
	"github.com/pdrhp/matchmovie/internal/config"
)

func main() {
	app.Go(config.Load())
}
