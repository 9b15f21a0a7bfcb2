package hearthnash

import "fmt"

// Player represents the identity of a player in the match.
type Player uint8

const (
	Player0 Player = iota
	Player1
	// NoPlayer is used where a player does not apply, for example the
	// previous game winner before the first game of a match.
	NoPlayer
)

var playerStr = [...]string{
	"Player0",
	"Player1",
	"NoPlayer",
}

func (p Player) String() string {
	return playerStr[p]
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p != Player0 && p != Player1 {
		panic(fmt.Sprintf("cannot call Opponent with player %v", p))
	}

	return 1 - p
}
