/* GoNDN2 - Named Data Networking client library for Go
 *
 * Copyright (C) 2021-2023 Regents of the University of California.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "strconv"

// ControlResponse is the response to an NFD management command: a status
// code and text, optionally followed by the control parameters the command
// took effect with.
type ControlResponse struct {
	statusCode uint64
	statusText string
	body       *ControlParameters
}

// NewControlResponse creates an empty control response.
func NewControlResponse() *ControlResponse {
	return new(ControlResponse)
}

// StatusCode returns the status code of the response.
func (c *ControlResponse) StatusCode() uint64 {
	return c.statusCode
}

// SetStatusCode sets the status code of the response.
func (c *ControlResponse) SetStatusCode(statusCode uint64) {
	c.statusCode = statusCode
}

// StatusText returns the status text of the response.
func (c *ControlResponse) StatusText() string {
	return c.statusText
}

// SetStatusText sets the status text of the response.
func (c *ControlResponse) SetStatusText(statusText string) {
	c.statusText = statusText
}

// Body returns the control parameters carried by the response, or nil if
// none were.
func (c *ControlResponse) Body() *ControlParameters {
	return c.body
}

// SetBody sets the control parameters carried by the response (or removes
// them if nil is specified).
func (c *ControlResponse) SetBody(body *ControlParameters) {
	c.body = body
}

func (c *ControlResponse) String() string {
	return "ControlResponse(" + strconv.FormatUint(c.statusCode, 10) + " " + c.statusText + ")"
}
