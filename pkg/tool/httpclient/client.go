/*
Copyright 2026 The KodeRover Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const UserAgent = "KodeRover Build Worker"

type Client struct {
	*resty.Client

	Host string // http://example.org
}

type ClientFunc func(c *Client)

type RequestFunc func(r *resty.Request)

func SetHostURL(host string) ClientFunc {
	return func(c *Client) {
		c.Host = host
		c.SetHostURL(host)
	}
}

func SetTimeout(timeout time.Duration) ClientFunc {
	return func(c *Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

func SetAuthToken(token string) ClientFunc {
	return func(c *Client) {
		if token != "" {
			c.SetAuthToken(token)
		}
	}
}

func SetBody(body interface{}) RequestFunc {
	return func(r *resty.Request) {
		r.SetBody(body)
	}
}

func SetHeader(name, value string) RequestFunc {
	return func(r *resty.Request) {
		r.SetHeader(name, value)
	}
}

func New(cfs ...ClientFunc) *Client {
	r := resty.New()
	r.SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", UserAgent)

	c := &Client{
		Client: r,
	}

	for _, cf := range cfs {
		cf(c)
	}

	return c
}

func (c *Client) Post(url string, rfs ...RequestFunc) (*resty.Response, error) {
	return c.Request(resty.MethodPost, url, rfs...)
}

func (c *Client) Request(method, url string, rfs ...RequestFunc) (*resty.Response, error) {
	r := c.R()

	for _, rf := range rfs {
		rf(r)
	}

	return wrapError(r.Execute(method, url))
}

func wrapError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return nil, err
	}

	if res.IsError() {
		return nil, NewErrorFromRestyResponse(res)
	}

	return res, nil
}
