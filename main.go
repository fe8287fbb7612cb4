package main

import "instaclone/internal/app"

// @title           Instaclone API
// @version         1.0
// @description     Social media backend: OTP signup, JWT auth, posts/comments/likes feed.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
