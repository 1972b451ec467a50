package main

// @title WeatherScope API
// @version 1.0
// @description Current conditions and a six hour outlook for any named place
// @contact.name API Support
// @BasePath /
