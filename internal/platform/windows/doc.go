// Package windows implements the wallpaper platform on top of the
// IDesktopWallpaper COM interface. Everything except this file is built
// for Windows only, so importing the package elsewhere registers nothing.
package windows
