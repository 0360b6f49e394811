package sdk

func (c *Client) Install(force bool) (string, error) {
	var resp struct {
		Path string `json:"path"`
	}
	err := c.post("/install", map[string]bool{"force": force}, &resp)
	return resp.Path, err
}

func (c *Client) GetStatus() (*Status, error) {
	var status Status
	err := c.get("/status", &status)
	return &status, err
}

func (c *Client) GetVersionInfo() (*VersionInfo, error) {
	var info VersionInfo
	err := c.get("/version", &info)
	return &info, err
}

func (c *Client) GetLauncherVersion() (string, error) {
	var resp struct {
		Version string `json:"version"`
	}
	err := c.get("/launcher-version", &resp)
	return resp.Version, err
}

func (c *Client) CheckLauncherUpdate() (*UpdateInfo, error) {
	var info UpdateInfo
	err := c.get("/launcher-update", &info)
	return &info, err
}

func (c *Client) Reset() error {
	return c.post("/reset", nil, nil)
}

func (c *Client) StartServer(mode string) error {
	return c.post("/server/start", map[string]string{"mode": mode}, nil)
}

func (c *Client) StopServer() error {
	return c.post("/server/stop", nil, nil)
}

func (c *Client) RestartServer() error {
	return c.post("/server/restart", nil, nil)
}

func (c *Client) Exit() error {
	return c.post("/exit", nil, nil)
}

func (c *Client) GetLocalIP() (string, error) {
	var resp struct {
		IP string `json:"ip"`
	}
	err := c.get("/local-ip", &resp)
	return resp.IP, err
}

func (c *Client) OpenURL(url string) error {
	return c.post("/open-url", map[string]string{"url": url}, nil)
}

func (c *Client) GetUpdateHistory() ([]UpdateRecord, error) {
	var records []UpdateRecord
	err := c.get("/updates/history", &records)
	return records, err
}
