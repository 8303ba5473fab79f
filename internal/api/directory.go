package api

import "context"

// AllCoaches lists every coach an athlete can message.
func (c *Client) AllCoaches(ctx context.Context) ([]DirectoryUser, error) {
	var resp struct {
		Coaches []DirectoryUser `json:"coaches"`
	}
	if err := c.get(ctx, "/athlete/all-coaches", &resp); err != nil {
		return nil, err
	}
	return resp.Coaches, nil
}

// AllAthletes lists every athlete a coach can message.
func (c *Client) AllAthletes(ctx context.Context) ([]DirectoryUser, error) {
	var resp struct {
		Athletes []DirectoryUser `json:"athletes"`
	}
	if err := c.get(ctx, "/coach/all-athletes", &resp); err != nil {
		return nil, err
	}
	return resp.Athletes, nil
}

// Directory returns the users the logged-in account may start a
// conversation with: coaches for athletes, athletes for coaches.
func (c *Client) Directory(ctx context.Context, userType string) ([]DirectoryUser, error) {
	if userType == "athlete" {
		return c.AllCoaches(ctx)
	}
	return c.AllAthletes(ctx)
}
