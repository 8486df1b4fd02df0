package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solacehq/solace/internal/crisis"
	"github.com/solacehq/solace/internal/middleware"
)

func interstitialView(i *crisis.Interstitial) gin.H {
	contacts := i.Contacts()
	views := make([]gin.H, 0, len(contacts))
	for _, ct := range contacts {
		views = append(views, gin.H{
			"label":  ct.Label,
			"detail": ct.Detail,
			"href":   ct.Href,
		})
	}
	st := i.Status()
	return gin.H{
		"state":          st.State,
		"countdown":      st.Countdown,
		"dismissable":    st.State == crisis.StateDismissable,
		"guardianBanner": st.GuardianAlerted != nil && *st.GuardianAlerted,
		"crisisLevel":    st.CrisisLevel,
		"contacts":       views,
	}
}

// CrisisState returns the live interstitial, polled by the client once a
// second while the overlay is up.
func (h *Handler) CrisisState(c *gin.Context) {
	user := middleware.GetUser(c)
	inter, err := h.center.Get(user.Namespace())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, interstitialView(inter))
}

// DismissCrisis applies the user's close action. While the countdown is
// running this is rejected; the gate lives here, not in the client.
func (h *Handler) DismissCrisis(c *gin.Context) {
	user := middleware.GetUser(c)
	if err := h.center.Dismiss(user.Namespace()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}
