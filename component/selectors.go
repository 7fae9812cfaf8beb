package component

// Standard selectors every component interface defines.
const (
	SelectOpen              int32 = -1
	SelectClose             int32 = -2
	SelectCanDo             int32 = -3
	SelectVersion           int32 = -4
	SelectRegister          int32 = -5
	SelectTarget            int32 = -6
	SelectUnregister        int32 = -7
	SelectGetMPWorkFunction int32 = -8
)

// StandardSelectors names the standard selectors in increasing order.
var StandardSelectors = []struct {
	Name string
	What int32
}{
	{"GetMPWorkFunction", SelectGetMPWorkFunction},
	{"Unregister", SelectUnregister},
	{"Target", SelectTarget},
	{"Register", SelectRegister},
	{"Version", SelectVersion},
	{"CanDo", SelectCanDo},
	{"Close", SelectClose},
	{"Open", SelectOpen},
}
