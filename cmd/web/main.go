package main

import "whatyaneed_backend/internal/app"

func main() {
	app.Run()
}
