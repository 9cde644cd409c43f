//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// JSONPretty ends up prominent on the profiler: only worth it when debugging the payload by eye
	return c.JSON(http.StatusOK, jsr)
}

// HTMLresponse - send a rendered page
func HTMLresponse(c echo.Context, page []byte) error {
	return c.HTMLBlob(http.StatusOK, page)
}
