package codec

// Image codec selectors.
const (
	SelectGetCodecInfo                     int32 = 0x0000
	SelectGetCompressionTime               int32 = 0x0001
	SelectGetMaxCompressionSize            int32 = 0x0002
	SelectPreCompress                      int32 = 0x0003
	SelectBandCompress                     int32 = 0x0004
	SelectPreDecompress                    int32 = 0x0005
	SelectBandDecompress                   int32 = 0x0006
	SelectBusy                             int32 = 0x0007
	SelectGetCompressedImageSize           int32 = 0x0008
	SelectGetSimilarity                    int32 = 0x0009
	SelectTrimImage                        int32 = 0x000a
	SelectRequestSettings                  int32 = 0x000b
	SelectGetSettings                      int32 = 0x000c
	SelectSetSettings                      int32 = 0x000d
	SelectFlush                            int32 = 0x000e
	SelectSetTimeCode                      int32 = 0x000f
	SelectIsImageDescriptionEquivalent     int32 = 0x0010
	SelectNewMemory                        int32 = 0x0011
	SelectDisposeMemory                    int32 = 0x0012
	SelectHitTestData                      int32 = 0x0013
	SelectNewImageBufferMemory             int32 = 0x0014
	SelectExtractAndCombineFields          int32 = 0x0015
	SelectGetMaxCompressionSizeWithSources int32 = 0x0016
	SelectSetTimeBase                      int32 = 0x0017
	SelectSourceChanged                    int32 = 0x0018
	SelectFlushLastFrame                   int32 = 0x0019
	SelectGetSettingsAsText                int32 = 0x001a
	SelectGetParameterListHandle           int32 = 0x001b
	SelectGetParameterList                 int32 = 0x001c
	SelectCreateStandardParameterDialog    int32 = 0x001d
	SelectIsStandardParameterDialogEvent   int32 = 0x001e
	SelectDismissStandardParameterDialog   int32 = 0x001f
	SelectStandardParameterDialogDoAction  int32 = 0x0020
	SelectNewImageGWorld                   int32 = 0x0021
	SelectDisposeImageGWorld               int32 = 0x0022
	SelectHitTestDataWithFlags             int32 = 0x0023
	SelectValidateParameters               int32 = 0x0024
	SelectGetBaseMPWorkFunction            int32 = 0x0025
	SelectRequestGammaLevel                int32 = 0x0026
	SelectGetSourceDataGammaLevel          int32 = 0x0027
	SelectGetDecompressLatency             int32 = 0x0028
)

// Image decompressor selectors.
const (
	SelectPreflight     int32 = 0x0200
	SelectInitialize    int32 = 0x0201
	SelectBeginBand     int32 = 0x0202
	SelectDrawBand      int32 = 0x0203
	SelectEndBand       int32 = 0x0204
	SelectQueueStarting int32 = 0x0205
	SelectQueueStopping int32 = 0x0206
	SelectDroppingFrame int32 = 0x0207
	SelectScheduleFrame int32 = 0x0208
	SelectCancelTrigger int32 = 0x0209
)
