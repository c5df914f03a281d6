// Package sources fetches the three inputs of a wallpaper run.
//
//   - [ImageSource]: a random concept art image from a MediaWiki category
//     catalog (halopedia.org by default)
//   - [WeatherSource]: the hourly forecast table from weather.com
//   - [JokeSource]: the joke of the day from ajokeaday.com
//
// Each Fetch returns a small result record carrying the data together with
// the URL it came from; the pipeline collects those URLs into the provenance
// file. Every failure is returned as a coded error (FETCH_FAILED,
// PARSE_FAILED or EMPTY_RESULT) and is fatal to the run.
package sources
