package handlers

// Chat message templates. Player placeholders take Mention() output, so
// every message is sent with HTML parse mode.
const (
	MsgNewGame        = "A new game is starting."
	MsgPlayerJoined   = "%s joined the game."
	MsgChooseRounds   = "Choose the number of rounds"
	MsgRoundsChosen   = "Selected: %d round(s)."
	MsgRoundHeader    = "Round %d.\nQuestion list"
	MsgChooseQuestion = "%s, pick a question."
	MsgAnswerNow      = "Your answer, %s"
	MsgCorrectAnswer  = "✅ Correct!\n%s earns %d points."
	MsgWrongAnswer    = "❌ Wrong.\n%s loses %d points."
	MsgAnswerTimeout  = "⏳ Time is up: next question. ➡"
	MsgGameTimeout    = "⏳ Time is up: the game is over. ❌"
	MsgWinner         = "👑 Winner: %s 👑"
	MsgFriendshipWins = "✨ Friendship wins! ✨"
	MsgGameOver       = "Game over."
	MsgScoreboard     = "Scoreboard."
	MsgScoreboardLine = "\n%s : %d points (✅ %d / ❌ %d)"
)
